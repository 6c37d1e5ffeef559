package docstore

import (
	"reflect"
	"strings"
	"time"
)

// MatchAll reports whether data satisfies every filter.
func MatchAll(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		if !Match(data, f) {
			return false
		}
	}
	return true
}

// Match evaluates a single filter against raw document data.
func Match(data map[string]any, f Filter) bool {
	switch f.Op {
	case OpEqual:
		v, ok := lookup(data, f.Field)
		return ok && equal(v, f.Value)
	case OpNotEqual:
		v, ok := lookup(data, f.Field)
		return !ok || !equal(v, f.Value)
	case OpContainsAny:
		want, _ := asSlice(f.Value)
		for _, have := range collect(data, strings.Split(f.Field, ".")) {
			for _, w := range want {
				if equal(have, w) {
					return true
				}
			}
		}
		return false
	case OpElemMatch:
		v, ok := lookup(data, f.Field)
		if !ok {
			return false
		}
		elems, ok := asSlice(v)
		if !ok {
			return false
		}
		sub, _ := f.Value.([]Filter)
		for _, el := range elems {
			if m, ok := el.(map[string]any); ok && MatchAll(m, sub) {
				return true
			}
		}
		return false
	}
	return false
}

// lookup resolves a dotted path through nested maps only.
func lookup(data map[string]any, field string) (any, bool) {
	var cur any = data
	for _, part := range strings.Split(field, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

// collect resolves a dotted path, fanning out over every array on the way.
func collect(v any, path []string) []any {
	if elems, ok := asSlice(v); ok {
		var out []any
		for _, el := range elems {
			out = append(out, collect(el, path)...)
		}
		return out
	}
	if len(path) == 0 {
		return []any{v}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	next, ok := m[path[0]]
	if !ok {
		return nil
	}
	return collect(next, path[1:])
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func equal(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// compare orders two field values: numbers, timestamps and strings compare
// naturally, a missing value sorts before everything else.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return cmpOrdered(fa, fb)
		}
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}

func cmpOrdered(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
