package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetType   string
	Breed     string
	Gender    string
	AgeLabel  string
	AgeMonths int
	WeightKg  float64
	Nutrition string
}

// UpdateInput: punteros para PATCH real, nil = no tocar.
type UpdateInput struct {
	PetType   *string
	Breed     *string
	Gender    *string
	AgeLabel  *string
	AgeMonths *int
	WeightKg  *float64
	Nutrition *string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: strings.TrimSpace(ownerUserID),
		PetType:     PetType(strings.ToLower(strings.TrimSpace(in.PetType))),
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      Gender(strings.TrimSpace(in.Gender)),
		AgeLabel:    AgeLabel(strings.TrimSpace(in.AgeLabel)),
		AgeMonths:   in.AgeMonths,
		WeightKg:    in.WeightKg,
		Nutrition:   strings.TrimSpace(in.Nutrition),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// Update solo lo puede hacer el dueño.
func (s *Service) Update(ctx context.Context, petID, actorUserID string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	if in.PetType != nil {
		p.PetType = PetType(strings.ToLower(strings.TrimSpace(*in.PetType)))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		p.Gender = Gender(strings.TrimSpace(*in.Gender))
	}
	if in.AgeLabel != nil {
		p.AgeLabel = AgeLabel(strings.TrimSpace(*in.AgeLabel))
	}
	if in.AgeMonths != nil {
		p.AgeMonths = *in.AgeMonths
	}
	if in.WeightKg != nil {
		p.WeightKg = *in.WeightKg
	}
	if in.Nutrition != nil {
		p.Nutrition = strings.TrimSpace(*in.Nutrition)
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func validate(p Pet) error {
	switch {
	case p.PetType == "":
		return fmt.Errorf("%w: petType is required", ErrInvalidInput)
	case p.Breed == "":
		return fmt.Errorf("%w: breed is required", ErrInvalidInput)
	case !p.Gender.Valid():
		return fmt.Errorf("%w: gender must be Male or Female", ErrInvalidInput)
	case !p.AgeLabel.Valid():
		return fmt.Errorf("%w: age label must be one of Puppy, Kitten, Young, Adult, Senior", ErrInvalidInput)
	case p.AgeMonths < 0 || p.AgeMonths > MaxAgeMonths:
		return fmt.Errorf("%w: age months must be between 0 and %d", ErrInvalidInput, MaxAgeMonths)
	case p.WeightKg < MinWeightKg || p.WeightKg > MaxWeightKg:
		return fmt.Errorf("%w: weightKg must be between %.1f and %d", ErrInvalidInput, MinWeightKg, MaxWeightKg)
	case utf8.RuneCountInString(p.Nutrition) > MaxNutritionLength:
		return fmt.Errorf("%w: nutrition must not exceed %d characters", ErrInvalidInput, MaxNutritionLength)
	}
	return nil
}
