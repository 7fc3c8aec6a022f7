package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	calendarCollection = "calendars"
	petsCollection     = "pets"
)

// Open conecta a MongoDB y verifica con ping.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes crea los índices que usan las consultas del calendario y de pets.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	calIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "is_deleted", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("user_start"),
		},
		{
			Keys:    bson.D{{Key: "type", Value: 1}, {Key: "status", Value: 1}, {Key: "start_date", Value: 1}},
			Options: options.Index().SetName("match_lookup"),
		},
	}
	if _, err := db.Collection(calendarCollection).Indexes().CreateMany(ctx, calIdx); err != nil {
		return err
	}

	petIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_user_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("owner_created"),
		},
	}
	_, err := db.Collection(petsCollection).Indexes().CreateMany(ctx, petIdx)
	return err
}
