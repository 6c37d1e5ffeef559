package docstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local runs.
// It evaluates every filter natively unless Restrict says otherwise.
type MemoryStore struct {
	mu   sync.RWMutex
	cols map[string]*memCollection

	// Restrict, when set, makes Supports report false for the filters it
	// matches, emulating a less expressive backend.
	Restrict func(f Filter) bool
	// Intercept, when set, runs before every operation; an error aborts it.
	Intercept func(op, collection string) error
	// InterceptWrite runs for each write of a batch once the writes before
	// it have been staged; an error aborts the whole batch.
	InterceptWrite func(index int, w Write) error
}

type memCollection struct {
	order []string
	docs  map[string]map[string]any
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cols: make(map[string]*memCollection)}
}

// Put inserts or replaces a document.
func (s *MemoryStore) Put(collection, id string, data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collection(collection)
	if _, exists := col.docs[id]; !exists {
		col.order = append(col.order, id)
	}
	col.docs[id] = cloneMap(data)
}

// Snapshot returns a copy of a document's data, or nil when it is missing.
func (s *MemoryStore) Snapshot(collection, id string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.cols[collection]
	if !ok {
		return nil
	}
	data, ok := col.docs[id]
	if !ok {
		return nil
	}
	return cloneMap(data)
}

func (s *MemoryStore) collection(name string) *memCollection {
	col, ok := s.cols[name]
	if !ok {
		col = &memCollection{docs: make(map[string]map[string]any)}
		s.cols[name] = col
	}
	return col
}

func (s *MemoryStore) intercept(op, collection string) error {
	if s.Intercept == nil {
		return nil
	}
	return s.Intercept(op, collection)
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := s.intercept("get", collection); err != nil {
		return nil, err
	}
	data := s.Snapshot(collection, id)
	if data == nil {
		return nil, ErrNotFound
	}
	return &Document{ID: id, Data: data}, nil
}

func (s *MemoryStore) GetMany(ctx context.Context, collection string, ids []string) ([]*Document, error) {
	if err := s.intercept("getMany", collection); err != nil {
		return nil, err
	}
	var out []*Document
	for _, id := range ids {
		if data := s.Snapshot(collection, id); data != nil {
			out = append(out, &Document{ID: id, Data: data})
		}
	}
	return out, nil
}

func (s *MemoryStore) Query(ctx context.Context, q Query) ([]*Document, error) {
	if err := s.intercept("query", q.Collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var docs []*Document
	if col, ok := s.cols[q.Collection]; ok {
		for _, id := range col.order {
			data := col.docs[id]
			if MatchAll(data, q.Filters) {
				docs = append(docs, &Document{ID: id, Data: cloneMap(data)})
			}
		}
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			a, _ := lookup(docs[i].Data, q.OrderBy)
			b, _ := lookup(docs[j].Data, q.OrderBy)
			if q.Descending {
				return compare(a, b) > 0
			}
			return compare(a, b) < 0
		})
	}
	if q.Offset > 0 {
		if q.Offset >= len(docs) {
			return nil, nil
		}
		docs = docs[q.Offset:]
	}
	if q.Limit > 0 && len(docs) > q.Limit {
		docs = docs[:q.Limit]
	}
	return docs, nil
}

func (s *MemoryStore) Update(ctx context.Context, w Write) error {
	if err := s.intercept("update", w.Collection); err != nil {
		return err
	}
	return s.apply([]Write{w})
}

// BatchUpdate stages every write on copies and swaps them in only when all
// writes succeeded.
func (s *MemoryStore) BatchUpdate(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}
	if err := s.intercept("batch", writes[0].Collection); err != nil {
		return err
	}
	return s.apply(writes)
}

func (s *MemoryStore) apply(writes []Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct{ col, id string }
	staged := make(map[key]map[string]any)
	for i, w := range writes {
		if s.InterceptWrite != nil {
			if err := s.InterceptWrite(i, w); err != nil {
				return err
			}
		}
		k := key{w.Collection, w.ID}
		data, ok := staged[k]
		if !ok {
			col, exists := s.cols[w.Collection]
			if !exists {
				return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
			}
			current, exists := col.docs[w.ID]
			if !exists {
				return fmt.Errorf("%s/%s: %w", w.Collection, w.ID, ErrNotFound)
			}
			data = cloneMap(current)
			staged[k] = data
		}
		for field, v := range w.Fields {
			data[field] = cloneValue(v)
		}
	}
	for k, data := range staged {
		s.cols[k.col].docs[k.id] = data
	}
	return nil
}

func (s *MemoryStore) Supports(f Filter) bool {
	return s.Restrict == nil || !s.Restrict(f)
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, el := range t {
			out[i] = cloneValue(el)
		}
		return out
	}
	return v
}
