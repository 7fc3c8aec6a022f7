package mongo

import (
	"context"
	"errors"
	"time"

	"packmates/internal/domain/calendar"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type calendarDoc struct {
	ID                    string    `bson:"_id"`
	UserID                string    `bson:"user_id"`
	Type                  string    `bson:"type"`
	StartDate             time.Time `bson:"start_date"`
	EndDate               time.Time `bson:"end_date"`
	Status                string    `bson:"status"`
	Pets                  []string  `bson:"pets"`
	Reason                string    `bson:"reason"`
	NeighborDistanceRange *int      `bson:"neighbor_distance_range,omitempty"`
	IsDeleted             bool      `bson:"is_deleted"`
	CreatedAt             time.Time `bson:"created_at"`
	UpdatedAt             time.Time `bson:"updated_at"`
}

type CalendarRepo struct {
	coll *mongo.Collection
}

func NewCalendarRepo(db *mongo.Database) *CalendarRepo {
	return &CalendarRepo{coll: db.Collection(calendarCollection)}
}

func (r *CalendarRepo) Create(ctx context.Context, e calendar.Entry) error {
	_, err := r.coll.InsertOne(ctx, toCalendarDoc(e))
	return err
}

func (r *CalendarRepo) GetByID(ctx context.Context, id string) (calendar.Entry, error) {
	var d calendarDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "is_deleted": false}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return calendar.Entry{}, calendar.ErrNotFound
		}
		return calendar.Entry{}, err
	}
	return d.toEntry(), nil
}

func (r *CalendarRepo) Update(ctx context.Context, e calendar.Entry) error {
	d := toCalendarDoc(e)
	set := bson.M{
		"type":       d.Type,
		"start_date": d.StartDate,
		"end_date":   d.EndDate,
		"status":     d.Status,
		"pets":       d.Pets,
		"reason":     d.Reason,
		"updated_at": d.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if d.NeighborDistanceRange != nil {
		set["neighbor_distance_range"] = *d.NeighborDistanceRange
	} else {
		update["$unset"] = bson.M{"neighbor_distance_range": ""}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": e.ID, "is_deleted": false}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return calendar.ErrNotFound
	}
	return nil
}

func (r *CalendarRepo) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": at}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return true, nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, calendar.ErrNotFound
	}
	return false, nil
}

func (r *CalendarRepo) HardDelete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CalendarRepo) Query(ctx context.Context, q calendar.Query) ([]calendar.Entry, int, error) {
	filter := buildFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(q.Skip)).
		SetLimit(int64(q.Limit))

	out, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return out, int(total), nil
}

func (r *CalendarRepo) HasOverlap(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	filter := bson.M{
		"user_id":    userID,
		"is_deleted": false,
		"start_date": bson.M{"$lt": end},
		"end_date":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CalendarRepo) FindAvailable(ctx context.Context, start, end time.Time) ([]calendar.Entry, error) {
	filter := bson.M{
		"type":       string(calendar.EntryTypeAvailability),
		"status":     string(calendar.StatusAvailable),
		"is_deleted": false,
		"start_date": bson.M{"$lte": end},
		"end_date":   bson.M{"$gte": start},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}, {Key: "_id", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *CalendarRepo) Stats(ctx context.Context) (calendar.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_deleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"type": "$type", "status": "$status"},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return calendar.Stats{}, err
	}
	defer cur.Close(ctx)

	st := calendar.Stats{
		EntriesByType:   map[calendar.EntryType]int{},
		EntriesByStatus: map[calendar.Status]int{},
	}
	for cur.Next(ctx) {
		var row struct {
			ID struct {
				Type   string `bson:"type"`
				Status string `bson:"status"`
			} `bson:"_id"`
			Count int `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return calendar.Stats{}, err
		}
		st.TotalEntries += row.Count
		st.EntriesByType[calendar.EntryType(row.ID.Type)] += row.Count
		st.EntriesByStatus[calendar.Status(row.ID.Status)] += row.Count
	}
	if err := cur.Err(); err != nil {
		return calendar.Stats{}, err
	}

	st.AvailabilityEntries = st.EntriesByType[calendar.EntryTypeAvailability]
	st.RequestEntries = st.EntriesByType[calendar.EntryTypeRequest]
	return st, nil
}

func (r *CalendarRepo) PurgeDeleted(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"is_deleted": true, "updated_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CalendarRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]calendar.Entry, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]calendar.Entry, 0)
	for cur.Next(ctx) {
		var d calendarDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toEntry())
	}
	return out, cur.Err()
}

func buildFilter(q calendar.Query) bson.M {
	filter := bson.M{}
	if !q.IncludeDeleted {
		filter["is_deleted"] = false
	}

	f := q.Filter
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Type != nil {
		filter["type"] = string(*f.Type)
	}
	if f.Status != nil {
		filter["status"] = string(*f.Status)
	}
	if f.StartFrom != nil {
		filter["start_date"] = bson.M{"$gte": *f.StartFrom}
	}
	if f.EndUntil != nil {
		filter["end_date"] = bson.M{"$lte": *f.EndUntil}
	}
	if f.MaxDistance != nil {
		filter["neighbor_distance_range"] = bson.M{"$lte": *f.MaxDistance}
	}
	return filter
}

func toCalendarDoc(e calendar.Entry) calendarDoc {
	pets := e.Pets
	if pets == nil {
		pets = []string{}
	}
	return calendarDoc{
		ID:                    e.ID,
		UserID:                e.UserID,
		Type:                  string(e.Type),
		StartDate:             e.StartDate.UTC(),
		EndDate:               e.EndDate.UTC(),
		Status:                string(e.Status),
		Pets:                  pets,
		Reason:                e.Reason,
		NeighborDistanceRange: e.NeighborDistanceRange,
		IsDeleted:             e.IsDeleted,
		CreatedAt:             e.CreatedAt.UTC(),
		UpdatedAt:             e.UpdatedAt.UTC(),
	}
}

func (d calendarDoc) toEntry() calendar.Entry {
	pets := d.Pets
	if pets == nil {
		pets = []string{}
	}
	return calendar.Entry{
		ID:                    d.ID,
		UserID:                d.UserID,
		Type:                  calendar.EntryType(d.Type),
		StartDate:             d.StartDate.UTC(),
		EndDate:               d.EndDate.UTC(),
		Status:                calendar.Status(d.Status),
		Pets:                  pets,
		Reason:                d.Reason,
		NeighborDistanceRange: d.NeighborDistanceRange,
		IsDeleted:             d.IsDeleted,
		CreatedAt:             d.CreatedAt.UTC(),
		UpdatedAt:             d.UpdatedAt.UTC(),
	}
}
