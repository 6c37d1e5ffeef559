package docstore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleEntry struct {
	ID    string         `firestore:"id"`
	Read  bool           `firestore:"read"`
	Extra map[string]any `firestore:",remain"`
}

type sample struct {
	ID        string        `firestore:"-"`
	CreatedAt time.Time     `firestore:"createdAt"`
	Users     []sampleEntry `firestore:"users"`
}

func TestDecode(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := &Document{ID: "n1", Data: map[string]any{
		"createdAt": created,
		"unknown":   "ignored",
		"users": []any{
			map[string]any{"id": "u1", "read": true, "seenOn": "web"},
			map[string]any{"id": "u2"},
		},
	}}

	var out sample
	require.NoError(t, Decode("notification", doc, &out))
	assert.Empty(t, out.ID)
	assert.True(t, created.Equal(out.CreatedAt))
	require.Len(t, out.Users, 2)
	assert.True(t, out.Users[0].Read)
	assert.Equal(t, "web", out.Users[0].Extra["seenOn"])
	assert.False(t, out.Users[1].Read)
}

func TestDecodeMillis(t *testing.T) {
	doc := &Document{ID: "n1", Data: map[string]any{"createdAt": int64(1700000000000)}}
	var out sample
	require.NoError(t, Decode("notification", doc, &out))
	assert.Equal(t, int64(1700000000000), out.CreatedAt.UnixMilli())
}

func TestDecodeRejectsMalformed(t *testing.T) {
	doc := &Document{ID: "n9", Data: map[string]any{
		"users": []any{map[string]any{"id": "u1", "read": "yes"}},
	}}
	var out sample
	err := Decode("notification", doc, &out)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "notification", decodeErr.Collection)
	assert.Equal(t, "n9", decodeErr.ID)
}
