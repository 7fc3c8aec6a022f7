package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"packmates/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type petDoc struct {
	ID          string    `bson:"_id"`
	OwnerUserID string    `bson:"owner_user_id"`
	PetType     string    `bson:"pet_type"`
	Breed       string    `bson:"breed"`
	Gender      string    `bson:"gender"`
	Age         petAgeDoc `bson:"age"`
	WeightKg    float64   `bson:"weight_kg"`
	Nutrition   string    `bson:"nutrition"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type petAgeDoc struct {
	Label  string `bson:"label"`
	Months int    `bson:"months"`
}

type PetsRepo struct {
	coll *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{coll: db.Collection(petsCollection)}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.coll.InsertOne(ctx, toPetDoc(p))
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPetDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	var d petDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return d.toPet(), nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"owner_user_id": ownerUserID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0)
	for cur.Next(ctx) {
		var d petDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toPet())
	}
	return out, cur.Err()
}

func toPetDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		PetType:     string(p.PetType),
		Breed:       p.Breed,
		Gender:      string(p.Gender),
		Age:         petAgeDoc{Label: string(p.AgeLabel), Months: p.AgeMonths},
		WeightKg:    p.WeightKg,
		Nutrition:   p.Nutrition,
		CreatedAt:   p.CreatedAt.UTC(),
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

func (d petDoc) toPet() pets.Pet {
	return pets.Pet{
		ID:          d.ID,
		OwnerUserID: d.OwnerUserID,
		PetType:     pets.PetType(d.PetType),
		Breed:       d.Breed,
		Gender:      pets.Gender(d.Gender),
		AgeLabel:    pets.AgeLabel(d.Age.Label),
		AgeMonths:   d.Age.Months,
		WeightKg:    d.WeightKg,
		Nutrition:   d.Nutrition,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}
