// File: database/docstore/store.go
package docstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document addressed by id does not exist.
var ErrNotFound = errors.New("docstore: document not found")

// Document is a raw document read from a collection.
type Document struct {
	ID   string
	Data map[string]any
}

// Op is a filter operator.
type Op string

const (
	// OpEqual matches when the field exists and equals Value.
	OpEqual Op = "=="
	// OpNotEqual matches when the field is missing or differs from Value.
	OpNotEqual Op = "!="
	// OpContainsAny matches when any value reached by Field is in Value ([]string).
	// Dotted paths fan out over arrays, so "teams.value" reaches the value of
	// every element of the teams array.
	OpContainsAny Op = "array-contains-any"
	// OpElemMatch matches when one element of the array at Field satisfies
	// every filter in Value ([]Filter).
	OpElemMatch Op = "elem-match"
)

// Filter is a single query predicate.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Query selects documents from one collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Offset     int
	Limit      int
}

// Write replaces the given top-level fields of one document.
type Write struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// Store is the minimal document database surface the service depends on.
type Store interface {
	// Get returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (*Document, error)
	// GetMany fetches several documents in one round trip; missing ids are skipped.
	GetMany(ctx context.Context, collection string, ids []string) ([]*Document, error)
	Query(ctx context.Context, q Query) ([]*Document, error)
	// Update returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, w Write) error
	// BatchUpdate applies every write or none of them.
	BatchUpdate(ctx context.Context, writes []Write) error
	// Supports reports whether the store evaluates f server-side.
	Supports(f Filter) bool
}

// Split partitions filters into those s evaluates natively and those the
// caller has to apply to the returned documents.
func Split(s Store, filters []Filter) (native, local []Filter) {
	for _, f := range filters {
		if s.Supports(f) {
			native = append(native, f)
		} else {
			local = append(local, f)
		}
	}
	return native, local
}
