package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"packmates/internal/domain/pets"
)

var (
	errPetIDRequired = errors.New("pet id required")
	errPetExists     = errors.New("pet already exists")
)

// petRepo guarda perfiles por ID y mantiene un índice por dueño para ListByOwner.
type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	byOwner map[string]map[string]struct{}
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		byOwner: make(map[string]map[string]struct{}),
	}
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errPetIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[p.ID]; ok {
		return errPetExists
	}
	r.byID[p.ID] = p
	r.index(p.OwnerUserID, p.ID)
	return nil
}

// Update reemplaza el perfil; si cambió el dueño, mueve el índice.
func (r *petRepo) Update(_ context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return errPetIDRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[p.ID]
	if !ok {
		return pets.ErrNotFound
	}
	if prev.OwnerUserID != p.OwnerUserID {
		r.unindex(prev.OwnerUserID, p.ID)
		r.index(p.OwnerUserID, p.ID)
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return pets.Pet{}, pets.ErrNotFound
}

// ListByOwner devuelve las mascotas del dueño por created_at asc (id como desempate).
func (r *petRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	ids := r.byOwner[ownerUserID]
	out := make([]pets.Pet, 0, len(ids))
	for id := range ids {
		out = append(out, r.byID[id])
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *petRepo) index(owner, id string) {
	set, ok := r.byOwner[owner]
	if !ok {
		set = make(map[string]struct{})
		r.byOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (r *petRepo) unindex(owner, id string) {
	set := r.byOwner[owner]
	delete(set, id)
	if len(set) == 0 {
		delete(r.byOwner, owner)
	}
}
