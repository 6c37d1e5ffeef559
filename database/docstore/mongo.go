package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on a MongoDB database. Document ids live in
// the string _id field.
type MongoStore struct {
	db *mongo.Database
}

// NewMongoStore wraps a connected database handle.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: get %s/%s: %w", collection, id, err)
	}
	return toDocument(raw), nil
}

func (s *MongoStore) GetMany(ctx context.Context, collection string, ids []string) ([]*Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return s.find(ctx, collection, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (s *MongoStore) Query(ctx context.Context, q Query) ([]*Document, error) {
	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderBy, Value: dir}, {Key: "_id", Value: dir}})
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	return s.find(ctx, q.Collection, mongoFilter(q.Filters), opts)
}

func (s *MongoStore) find(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions) ([]*Document, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: find in %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []*Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("mongo: decode from %s: %w", collection, err)
		}
		docs = append(docs, toDocument(raw))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo: cursor over %s: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) Update(ctx context.Context, w Write) error {
	res, err := s.db.Collection(w.Collection).UpdateOne(ctx, bson.M{"_id": w.ID}, bson.M{"$set": w.Fields})
	if err != nil {
		return fmt.Errorf("mongo: update %s/%s: %w", w.Collection, w.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
	}
	return nil
}

// BatchUpdate runs every write inside one multi-document transaction.
func (s *MongoStore) BatchUpdate(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	sess, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("mongo: could not start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		for _, w := range writes {
			res, err := s.db.Collection(w.Collection).UpdateOne(sc, bson.M{"_id": w.ID}, bson.M{"$set": w.Fields})
			if err != nil {
				return fmt.Errorf("update %s/%s failed: %w", w.Collection, w.ID, err)
			}
			if res.MatchedCount == 0 {
				return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
			}
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("mongo: batch transaction failed: %w", err)
	}
	return nil
}

// Supports is true for every operator: dotted paths reach into arrays and
// element matches map to $elemMatch.
func (s *MongoStore) Supports(f Filter) bool {
	return true
}

func mongoFilter(filters []Filter) bson.M {
	out := bson.M{}
	for _, f := range filters {
		switch f.Op {
		case OpEqual:
			out[f.Field] = f.Value
		case OpNotEqual:
			out[f.Field] = bson.M{"$ne": f.Value}
		case OpContainsAny:
			out[f.Field] = bson.M{"$in": f.Value}
		case OpElemMatch:
			sub, _ := f.Value.([]Filter)
			out[f.Field] = bson.M{"$elemMatch": mongoFilter(sub)}
		}
	}
	return out
}

func toDocument(raw bson.M) *Document {
	id := fmt.Sprint(raw["_id"])
	if oid, ok := raw["_id"].(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	delete(raw, "_id")
	return &Document{ID: id, Data: normalize(raw).(map[string]any)}
}

// normalize converts driver types to the plain shapes Decode expects.
func normalize(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = normalize(el)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, el := range t {
			out[k] = normalize(el)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalize(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = normalize(el)
		}
		return out
	case primitive.DateTime:
		return t.Time()
	case int32:
		return int64(t)
	}
	return v
}
