package docstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// maxContainsAny is Firestore's disjunction limit for array-contains-any.
const maxContainsAny = 30

// FirestoreStore implements Store on a Cloud Firestore client.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore wraps an initialised Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("firestore: get %s/%s: %w", collection, id, err)
	}
	return &Document{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) GetMany(ctx context.Context, collection string, ids []string) ([]*Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = s.client.Collection(collection).Doc(id)
	}
	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("firestore: get all from %s: %w", collection, err)
	}
	docs := make([]*Document, 0, len(snaps))
	for _, snap := range snaps {
		if !snap.Exists() {
			continue
		}
		docs = append(docs, &Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Query(ctx context.Context, q Query) ([]*Document, error) {
	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		if !s.Supports(f) {
			return nil, fmt.Errorf("firestore: unsupported filter %s %s", f.Field, f.Op)
		}
		query = query.Where(f.Field, string(f.Op), f.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []*Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: query %s: %w", q.Collection, err)
		}
		docs = append(docs, &Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Update(ctx context.Context, w Write) error {
	_, err := s.client.Collection(w.Collection).Doc(w.ID).Update(ctx, updates(w.Fields))
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("firestore: update %s/%s: %w", w.Collection, w.ID, err)
	}
	return nil
}

// BatchUpdate commits all writes in a single WriteBatch.
func (s *FirestoreStore) BatchUpdate(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	batch := s.client.Batch()
	for _, w := range writes {
		batch.Update(s.client.Collection(w.Collection).Doc(w.ID), updates(w.Fields))
	}
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("firestore: batch commit of %d writes: %w", len(writes), err)
	}
	return nil
}

// Supports covers equality and array-contains-any on top-level fields.
// Firestore cannot address fields inside arrays of objects, so dotted paths
// and element matches stay with the caller.
func (s *FirestoreStore) Supports(f Filter) bool {
	if strings.Contains(f.Field, ".") {
		return false
	}
	switch f.Op {
	case OpEqual:
		return true
	case OpContainsAny:
		values, ok := asSlice(f.Value)
		return ok && len(values) > 0 && len(values) <= maxContainsAny
	}
	return false
}

func updates(fields map[string]any) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ups := make([]firestore.Update, len(keys))
	for i, k := range keys {
		ups[i] = firestore.Update{Path: k, Value: fields[k]}
	}
	return ups
}
