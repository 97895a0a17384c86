package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkupapp/linkup/internal/models"
)

func TestExtract(t *testing.T) {
	raw := json.RawMessage(`{"data":{"posts":[{"_id":"p1"}],"empty":null}}`)

	value, ok := extract(raw, "data.posts")
	require.True(t, ok)
	assert.JSONEq(t, `[{"_id":"p1"}]`, string(value))

	_, ok = extract(raw, "data.missing")
	assert.False(t, ok)

	// null counts as absent
	_, ok = extract(raw, "data.empty")
	assert.False(t, ok)

	// walking through a non-object fails cleanly
	_, ok = extract(raw, "data.posts.deeper")
	assert.False(t, ok)
}

func TestExtractFirst(t *testing.T) {
	raw := json.RawMessage(`{"data":{"posts":[1,2]}}`)

	value, ok := extractFirst(raw, "posts", "data.posts", "data.data.posts")
	require.True(t, ok)
	assert.JSONEq(t, `[1,2]`, string(value))

	_, ok = extractFirst(raw, "users", "data.users")
	assert.False(t, ok)
}

func TestDecodeList_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"direct field", `{"posts":[{"_id":"p1"},{"_id":"p2"}]}`},
		{"data wrapper", `{"data":{"posts":[{"_id":"p1"},{"_id":"p2"}]}}`},
		{"double wrapper", `{"data":{"data":{"posts":[{"_id":"p1"},{"_id":"p2"}]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, ok := decodeList[models.Post](json.RawMessage(tt.body), "posts", "data.posts", "data.data.posts")
			require.True(t, ok)
			require.Len(t, posts, 2)
			assert.Equal(t, "p1", posts[0].ID)
			assert.Equal(t, "p2", posts[1].ID)
		})
	}
}

func TestDecodeList_Malformed(t *testing.T) {
	// present but not an array
	_, ok := decodeList[models.Post](json.RawMessage(`{"posts":"oops"}`), "posts")
	assert.False(t, ok)

	// no candidate path present
	_, ok = decodeList[models.Post](json.RawMessage(`{"users":[]}`), "posts", "data.posts")
	assert.False(t, ok)
}

func TestDecodeOne(t *testing.T) {
	raw := json.RawMessage(`{"data":{"post":{"_id":"p1","body":"hello"}}}`)

	post, ok := decodeOne[models.Post](raw, "post", "data.post")
	require.True(t, ok)
	assert.Equal(t, "p1", post.ID)
	assert.Equal(t, "hello", post.Body)

	_, ok = decodeOne[models.Post](json.RawMessage(`{"post":[1]}`), "post")
	assert.False(t, ok)
}

func TestExtractString(t *testing.T) {
	token, ok := extractString(json.RawMessage(`{"token":"abc"}`), "token", "data.token")
	require.True(t, ok)
	assert.Equal(t, "abc", token)

	token, ok = extractString(json.RawMessage(`{"data":{"token":"xyz"}}`), "token", "data.token")
	require.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = extractString(json.RawMessage(`{"token":42}`), "token")
	assert.False(t, ok)
}

// The backend serializes counters both as numbers and as numeric strings.
func TestDecodeCount(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   int
		wantOk bool
	}{
		{"number", `{"unreadCount":7}`, 7, true},
		{"numeric string", `{"unreadCount":"7"}`, 7, true},
		{"padded string", `{"unreadCount":" 12 "}`, 12, true},
		{"wrapped number", `{"data":{"unreadCount":3}}`, 3, true},
		{"zero", `{"unreadCount":0}`, 0, true},
		{"garbage string", `{"unreadCount":"many"}`, 0, false},
		{"absent", `{"count":5}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeCount(json.RawMessage(tt.body), "unreadCount", "data.unreadCount")
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
