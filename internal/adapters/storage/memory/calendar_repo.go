package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"packmates/internal/domain/calendar"
)

type calendarRepo struct {
	mu   sync.RWMutex
	byID map[string]calendar.Entry
}

func NewCalendarRepo() calendar.Repository {
	return &calendarRepo{
		byID: make(map[string]calendar.Entry),
	}
}

func (r *calendarRepo) Create(ctx context.Context, e calendar.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("calendar entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("calendar entry already exists")
	}
	r.byID[e.ID] = cloneEntry(e)
	return nil
}

func (r *calendarRepo) GetByID(ctx context.Context, id string) (calendar.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok || e.IsDeleted {
		return calendar.Entry{}, calendar.ErrNotFound
	}
	return cloneEntry(e), nil
}

func (r *calendarRepo) Update(ctx context.Context, e calendar.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[e.ID]
	if !ok || cur.IsDeleted {
		return calendar.ErrNotFound
	}
	// created_at e is_deleted no se tocan por update
	e.CreatedAt = cur.CreatedAt
	e.IsDeleted = cur.IsDeleted
	r.byID[e.ID] = cloneEntry(e)
	return nil
}

func (r *calendarRepo) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return false, calendar.ErrNotFound
	}
	if e.IsDeleted {
		return false, nil
	}
	e.IsDeleted = true
	e.UpdatedAt = at
	r.byID[id] = e
	return true, nil
}

func (r *calendarRepo) HardDelete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return 0, nil
	}
	delete(r.byID, id)
	return 1, nil
}

func (r *calendarRepo) Query(ctx context.Context, q calendar.Query) ([]calendar.Entry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]calendar.Entry, 0)
	for _, e := range r.byID {
		if e.IsDeleted && !q.IncludeDeleted {
			continue
		}
		if !q.Filter.Matches(e) {
			continue
		}
		all = append(all, e)
	}
	sortByStart(all)

	total := len(all)
	if q.Skip >= total {
		return []calendar.Entry{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Skip+q.Limit < total {
		end = q.Skip + q.Limit
	}

	out := make([]calendar.Entry, 0, end-q.Skip)
	for _, e := range all[q.Skip:end] {
		out = append(out, cloneEntry(e))
	}
	return out, total, nil
}

func (r *calendarRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.byID {
		if e.IsDeleted || e.UserID != userID {
			continue
		}
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if calendar.Overlaps(e.StartDate, e.EndDate, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *calendarRepo) FindAvailable(ctx context.Context, start, end time.Time) ([]calendar.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]calendar.Entry, 0)
	for _, e := range r.byID {
		if e.IsDeleted || e.Type != calendar.EntryTypeAvailability || e.Status != calendar.StatusAvailable {
			continue
		}
		if !calendar.Intersects(e.StartDate, e.EndDate, start, end) {
			continue
		}
		out = append(out, cloneEntry(e))
	}
	sortByStart(out)
	return out, nil
}

func (r *calendarRepo) Stats(ctx context.Context) (calendar.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := calendar.Stats{
		EntriesByType:   map[calendar.EntryType]int{},
		EntriesByStatus: map[calendar.Status]int{},
	}
	for _, e := range r.byID {
		if e.IsDeleted {
			continue
		}
		st.TotalEntries++
		st.EntriesByType[e.Type]++
		st.EntriesByStatus[e.Status]++
	}
	st.AvailabilityEntries = st.EntriesByType[calendar.EntryTypeAvailability]
	st.RequestEntries = st.EntriesByType[calendar.EntryTypeRequest]
	return st, nil
}

func (r *calendarRepo) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, e := range r.byID {
		if e.IsDeleted && e.UpdatedAt.Before(cutoff) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

func sortByStart(items []calendar.Entry) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.Before(items[j].StartDate)
		}
		return items[i].ID < items[j].ID
	})
}

// cloneEntry evita compartir slices/punteros con el caller.
func cloneEntry(e calendar.Entry) calendar.Entry {
	if e.Pets != nil {
		e.Pets = append([]string(nil), e.Pets...)
	}
	if e.NeighborDistanceRange != nil {
		d := *e.NeighborDistanceRange
		e.NeighborDistanceRange = &d
	}
	return e
}
