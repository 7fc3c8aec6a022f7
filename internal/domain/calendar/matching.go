package calendar

import (
	"context"
	"sort"
	"strings"
)

// Matcher busca disponibilidades compatibles con una solicitud.
type Matcher struct {
	repo Repository
}

func NewMatcher(repo Repository) *Matcher {
	return &Matcher{repo: repo}
}

// FindMatches devuelve las entradas availability (status=available, no borradas) cuyo
// intervalo toca el de la solicitud, ordenadas por neighborDistanceRange asc.
// Sin distancia van al final; empates por start_date y luego id.
func (m *Matcher) FindMatches(ctx context.Context, requestID string) ([]Entry, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, ErrNotFound
	}

	req, err := m.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, storageErr("get", err)
	}
	if req.Type != EntryTypeRequest {
		return nil, ErrWrongType
	}

	candidates, err := m.repo.FindAvailable(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, storageErr("find_available", err)
	}

	out := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		// El store ya filtra; re-chequeamos para no depender de cada adapter.
		if c.IsDeleted || c.Type != EntryTypeAvailability || c.Status != StatusAvailable {
			continue
		}
		if !Intersects(c.StartDate, c.EndDate, req.StartDate, req.EndDate) {
			continue
		}
		out = append(out, c)
	}

	RankByDistance(out)
	return out, nil
}

// RankByDistance ordena in-place: distancia asc, nulls last, start asc, id asc.
func RankByDistance(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.NeighborDistanceRange != nil && b.NeighborDistanceRange == nil:
			return true
		case a.NeighborDistanceRange == nil && b.NeighborDistanceRange != nil:
			return false
		case a.NeighborDistanceRange != nil && *a.NeighborDistanceRange != *b.NeighborDistanceRange:
			return *a.NeighborDistanceRange < *b.NeighborDistanceRange
		}
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})
}
