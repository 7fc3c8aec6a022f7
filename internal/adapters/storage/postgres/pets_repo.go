package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"packmates/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	pet_type, breed, gender,
	age_label, age_months, weight_kg, nutrition,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.OwnerUserID,
		string(p.PetType),
		p.Breed,
		string(p.Gender),
		string(p.AgeLabel),
		p.AgeMonths,
		p.WeightKg,
		p.Nutrition,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			pet_type = $2,
			breed = $3,
			gender = $4,
			age_label = $5,
			age_months = $6,
			weight_kg = $7,
			nutrition = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		string(p.PetType),
		p.Breed,
		string(p.Gender),
		string(p.AgeLabel),
		p.AgeMonths,
		p.WeightKg,
		p.Nutrition,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p                         pets.Pet
		petType, gender, ageLabel string
		ageMonths                 sql.NullInt64
		weight                    sql.NullFloat64
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&petType,
		&p.Breed,
		&gender,
		&ageLabel,
		&ageMonths,
		&weight,
		&p.Nutrition,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.PetType = pets.PetType(petType)
	p.Gender = pets.Gender(gender)
	p.AgeLabel = pets.AgeLabel(ageLabel)
	p.AgeMonths = int(ageMonths.Int64)
	p.WeightKg = weight.Float64
	return p, nil
}
