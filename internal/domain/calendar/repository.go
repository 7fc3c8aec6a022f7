package calendar

import (
	"context"
	"time"
)

// Repository es el Entry Store. Sin reglas de negocio: solo acceso a datos.
//
// Salvo que se indique lo contrario (Query.IncludeDeleted, SoftDelete, HardDelete,
// PurgeDeleted), todas las lecturas excluyen entradas con IsDeleted=true.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	Update(ctx context.Context, e Entry) error

	// SoftDelete devuelve false (sin error) si la entrada ya estaba borrada
	// y ErrNotFound si no existe.
	SoftDelete(ctx context.Context, id string, at time.Time) (bool, error)
	HardDelete(ctx context.Context, id string) (int64, error)

	Query(ctx context.Context, q Query) ([]Entry, int, error)

	// HasOverlap aplica el test estricto existing.start < end AND existing.end > start.
	HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)

	// FindAvailable aplica el test inclusivo existing.start <= end AND existing.end >= start
	// sobre type=availability, status=available. El orden lo decide el dominio.
	FindAvailable(ctx context.Context, start, end time.Time) ([]Entry, error)

	Stats(ctx context.Context) (Stats, error)

	// PurgeDeleted elimina físicamente las entradas borradas lógicamente antes de cutoff.
	PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error)
}

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Filter: cada campo nil/vacío significa "sin filtro".
type Filter struct {
	UserID      string
	Type        *EntryType
	Status      *Status
	StartFrom   *time.Time // start_date >= StartFrom
	EndUntil    *time.Time // end_date <= EndUntil
	MaxDistance *int       // neighbor_distance_range <= MaxDistance
}

// Query es la especificación tipada que reciben los stores.
// Resultados ordenados por start_date asc (y id asc como desempate).
type Query struct {
	Filter Filter
	Skip   int
	Limit  int

	// IncludeDeleted solo lo usa el camino administrativo.
	IncludeDeleted bool
}

// Validate normaliza skip/limit y rechaza filtros inválidos antes de llegar al store.
func (q *Query) Validate() error {
	ve := &ValidationError{}

	if q.Skip < 0 {
		ve.add("skip must be >= 0")
	}
	if q.Limit < 0 || q.Limit > MaxLimit {
		ve.add("limit must be between 1 and %d", MaxLimit)
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Filter.Type != nil && !q.Filter.Type.Valid() {
		ve.add("type must be either 'availability' or 'request'")
	}
	if q.Filter.Status != nil && !q.Filter.Status.Valid() {
		ve.add("status must be one of: available, requested, booked, cancelled, in_review")
	}
	if d := q.Filter.MaxDistance; d != nil && (*d < MinNeighborRange || *d > MaxNeighborRange) {
		ve.add("neighborDistanceRange must be between %d and %d", MinNeighborRange, MaxNeighborRange)
	}

	if !ve.empty() {
		return ve
	}
	return nil
}

// Matches evalúa el filtro en memoria. Lo comparten el adapter in-memory y los tests.
func (f Filter) Matches(e Entry) bool {
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	if f.Type != nil && e.Type != *f.Type {
		return false
	}
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.StartFrom != nil && e.StartDate.Before(*f.StartFrom) {
		return false
	}
	if f.EndUntil != nil && e.EndDate.After(*f.EndUntil) {
		return false
	}
	if f.MaxDistance != nil {
		if e.NeighborDistanceRange == nil || *e.NeighborDistanceRange > *f.MaxDistance {
			return false
		}
	}
	return true
}
