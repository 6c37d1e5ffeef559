package docstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DecodeError reports a document whose shape does not match its schema.
type DecodeError struct {
	Collection string
	ID         string
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("docstore: malformed document %s/%s: %v", e.Collection, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var timeType = reflect.TypeOf(time.Time{})

// millisToTime accepts epoch milliseconds wherever a timestamp is expected.
func millisToTime(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case int64:
		return time.UnixMilli(v), nil
	case int:
		return time.UnixMilli(int64(v)), nil
	case float64:
		return time.UnixMilli(int64(v)), nil
	}
	return data, nil
}

// Decode strictly maps raw document data onto out, a pointer to a struct
// tagged with `firestore` keys. Type mismatches are reported as *DecodeError.
func Decode(collection string, doc *Document, out any) error {
	return DecodeMap(collection, doc.ID, doc.Data, out)
}

// DecodeMap is Decode for a nested object of a document.
func DecodeMap(collection, id string, data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "firestore",
		Result:     out,
		DecodeHook: millisToTime,
	})
	if err != nil {
		return fmt.Errorf("docstore: building decoder: %w", err)
	}
	if err := dec.Decode(data); err != nil {
		return &DecodeError{Collection: collection, ID: id, Err: err}
	}
	return nil
}
