package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	post := map[string]any{
		"isDeleted": false,
		"teams": []any{
			map[string]any{"label": "Design", "value": "t-design"},
			map[string]any{"label": "Ops", "value": "t-ops"},
		},
		"likes": []any{"u1", "u2"},
		"users": []any{
			map[string]any{"id": "u1", "read": true},
			map[string]any{"id": "u2", "read": false, "deleted": true},
			map[string]any{"id": "u3"},
		},
		"count": int64(3),
	}

	recipient := func(id string, extra ...Filter) Filter {
		sub := append([]Filter{{Field: "id", Op: OpEqual, Value: id}}, extra...)
		return Filter{Field: "users", Op: OpElemMatch, Value: sub}
	}
	notDeleted := Filter{Field: "deleted", Op: OpNotEqual, Value: true}
	unread := Filter{Field: "read", Op: OpNotEqual, Value: true}

	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"equal bool", Filter{Field: "isDeleted", Op: OpEqual, Value: false}, true},
		{"equal missing", Filter{Field: "orgId", Op: OpEqual, Value: "o1"}, false},
		{"equal numeric kinds", Filter{Field: "count", Op: OpEqual, Value: 3}, true},
		{"not equal missing", Filter{Field: "orgId", Op: OpNotEqual, Value: "o1"}, true},
		{"contains any through objects", Filter{Field: "teams.value", Op: OpContainsAny, Value: []string{"t-x", "t-ops"}}, true},
		{"contains any no overlap", Filter{Field: "teams.value", Op: OpContainsAny, Value: []string{"t-x"}}, false},
		{"contains any scalars", Filter{Field: "likes", Op: OpContainsAny, Value: []string{"u2"}}, true},
		{"contains any missing field", Filter{Field: "tags.value", Op: OpContainsAny, Value: []string{"t-ops"}}, false},
		{"elem match", recipient("u1"), true},
		{"elem match deleted excluded", recipient("u2", notDeleted), false},
		{"elem match read missing counts unread", recipient("u3", notDeleted, unread), true},
		{"elem match read entry", recipient("u1", unread), false},
		{"elem match absent", recipient("u9"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Match(post, tc.f))
		})
	}
}

func TestMatchNoTeamsNeverVisible(t *testing.T) {
	f := Filter{Field: "teams.value", Op: OpContainsAny, Value: []string{"t-ops"}}
	assert.False(t, Match(map[string]any{"teams": []any{}}, f))
	assert.False(t, Match(map[string]any{}, f))
	assert.False(t, Match(map[string]any{"teams": nil}, f))
}
