package calendar

import (
	"context"
	"strings"
	"time"

	"packmates/internal/platform/logger"
	"packmates/internal/ports/locker"

	"github.com/google/uuid"
)

type Service struct {
	repo    Repository
	overlap *OverlapChecker
	matcher *Matcher
	locks   locker.Locker
	log     logger.Logger
	now     func() time.Time
}

// NewService arma el servicio del calendario. locks puede ser nil (sin serialización
// por usuario; solo para tests puntuales), log puede ser nil.
func NewService(repo Repository, locks locker.Locker, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		overlap: NewOverlapChecker(repo),
		matcher: NewMatcher(repo),
		locks:   locks,
		log:     log.With(map[string]any{"component": "calendar"}),
		now:     time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Entry, error) {
	start, err := NormalizeDate("startDate", in.StartDate)
	if err != nil {
		return Entry{}, err
	}
	end, err := NormalizeDate("endDate", in.EndDate)
	if err != nil {
		return Entry{}, err
	}

	if ve := validateCreateFields(in); !ve.empty() {
		return Entry{}, ve
	}

	now := s.now().UTC()
	e := Entry{
		ID:                    uuid.NewString(),
		UserID:                strings.TrimSpace(in.UserID),
		Type:                  in.Type,
		StartDate:             start,
		EndDate:               end,
		Status:                DefaultStatus(in.Type),
		Pets:                  normalizePets(in.Pets),
		NeighborDistanceRange: in.NeighborDistanceRange,
		IsDeleted:             false,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Reason != nil {
		e.Reason = strings.TrimSpace(*in.Reason)
	}

	if err := ValidateTypeFields(e); err != nil {
		return Entry{}, newValidationError(err)
	}
	if !e.EndDate.After(e.StartDate) {
		return Entry{}, &ValidationError{Messages: []string{"endDate must be after startDate"}}
	}

	unlock, err := s.lockUser(ctx, e.UserID)
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	clash, err := s.overlap.HasOverlap(ctx, e.UserID, e.StartDate, e.EndDate, "")
	if err != nil {
		return Entry{}, err
	}
	if clash {
		s.log.Debug("calendar entry rejected: overlap", map[string]any{"user_id": e.UserID})
		return Entry{}, ErrOverlappingEntry
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, storageErr("create", err)
	}

	s.log.Info("calendar entry created", map[string]any{
		"entry_id": e.ID,
		"user_id":  e.UserID,
		"type":     string(e.Type),
	})
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, storageErr("get", err)
	}
	return e, nil
}

// Update aplica un patch parcial. Solo se re-validan los campos presentes; el
// chequeo de solapamiento usa el intervalo resultante (valores previos + patch)
// excluyendo a la propia entrada.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Entry, error) {
	if ve := validatePatchFields(p); !ve.empty() {
		return Entry{}, ve
	}

	var newStart, newEnd *time.Time
	if p.StartDate != nil {
		t, err := NormalizeDate("startDate", *p.StartDate)
		if err != nil {
			return Entry{}, err
		}
		newStart = &t
	}
	if p.EndDate != nil {
		t, err := NormalizeDate("endDate", *p.EndDate)
		if err != nil {
			return Entry{}, err
		}
		newEnd = &t
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	unlock, err := s.lockUser(ctx, current.UserID)
	if err != nil {
		return Entry{}, err
	}
	defer unlock()

	// Releer dentro del lock: otro request pudo tocar la entrada.
	current, err = s.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	merged := current
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if newStart != nil {
		merged.StartDate = *newStart
	}
	if newEnd != nil {
		merged.EndDate = *newEnd
	}
	if p.Status != nil {
		merged.Status = *p.Status
	}
	if p.Pets != nil {
		merged.Pets = normalizePets(*p.Pets)
	}
	if p.Reason != nil {
		merged.Reason = strings.TrimSpace(*p.Reason)
	}
	if p.NeighborDistanceRange != nil {
		merged.NeighborDistanceRange = p.NeighborDistanceRange
	}

	if p.touchesTypeFields() {
		if err := ValidateTypeFields(merged); err != nil {
			return Entry{}, newValidationError(err)
		}
	}

	if p.touchesInterval() {
		if !merged.EndDate.After(merged.StartDate) {
			return Entry{}, &ValidationError{Messages: []string{"endDate must be after startDate"}}
		}
		clash, err := s.overlap.HasOverlap(ctx, merged.UserID, merged.StartDate, merged.EndDate, merged.ID)
		if err != nil {
			return Entry{}, err
		}
		if clash {
			return Entry{}, ErrOverlappingEntry
		}
	}

	merged.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, merged); err != nil {
		return Entry{}, storageErr("update", err)
	}

	s.log.Info("calendar entry updated", map[string]any{"entry_id": merged.ID, "user_id": merged.UserID})
	return merged, nil
}

// HardDelete borra físicamente. Devuelve la cantidad de filas eliminadas (0 o 1).
func (s *Service) HardDelete(ctx context.Context, id string) (int64, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return 0, nil
	}
	n, err := s.repo.HardDelete(ctx, id)
	if err != nil {
		return 0, storageErr("hard_delete", err)
	}
	if n > 0 {
		s.log.Info("calendar entry deleted", map[string]any{"entry_id": id})
	}
	return n, nil
}

// SoftDelete marca la entrada como borrada. Repetirlo es un no-op exitoso
// (changed=false); una entrada inexistente devuelve ErrNotFound.
func (s *Service) SoftDelete(ctx context.Context, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, ErrNotFound
	}
	changed, err := s.repo.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return false, storageErr("soft_delete", err)
	}
	if changed {
		s.log.Info("calendar entry soft-deleted", map[string]any{"entry_id": id})
	}
	return changed, nil
}

func (s *Service) List(ctx context.Context, q Query) ([]Entry, int, error) {
	q.IncludeDeleted = false
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	items, total, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, 0, storageErr("query", err)
	}
	return items, total, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string, q Query) ([]Entry, int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, 0, &ValidationError{Messages: []string{"userId is required"}}
	}
	q.Filter.UserID = userID
	return s.List(ctx, q)
}

func (s *Service) ListRequests(ctx context.Context, q Query) ([]Entry, int, error) {
	t := EntryTypeRequest
	q.Filter.Type = &t
	q.Filter.MaxDistance = nil
	return s.List(ctx, q)
}

func (s *Service) ListAvailability(ctx context.Context, q Query) ([]Entry, int, error) {
	t := EntryTypeAvailability
	q.Filter.Type = &t
	return s.List(ctx, q)
}

// FindMatches delega en el Matcher (solo lectura).
func (s *Service) FindMatches(ctx context.Context, requestID string) ([]Entry, error) {
	return s.matcher.FindMatches(ctx, requestID)
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return Stats{}, storageErr("stats", err)
	}
	return st, nil
}

// PurgeDeleted elimina las entradas borradas lógicamente hace más de retention.
func (s *Service) PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-retention)
	n, err := s.repo.PurgeDeleted(ctx, cutoff)
	if err != nil {
		return 0, storageErr("purge", err)
	}
	s.log.Info("purged soft-deleted calendar entries", map[string]any{"count": n, "cutoff": cutoff})
	return n, nil
}

func (s *Service) lockUser(ctx context.Context, userID string) (func(), error) {
	if s.locks == nil {
		return func() {}, nil
	}
	unlock, err := s.locks.Lock(ctx, "calendar:user:"+userID)
	if err != nil {
		return nil, &StorageError{Op: "lock", Err: err}
	}
	return unlock, nil
}
