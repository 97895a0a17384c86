package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// The backend nests payloads under varying keys: a direct field, a generic
// "data" wrapper, or a wrapper-of-wrapper, depending on the endpoint and
// its version. Each accessor probes an ordered list of candidate paths and
// falls back to an absent value, so the brittleness stays at this boundary
// and never leaks into callers.

// extract walks raw along a dot-separated path ("data.posts") and returns
// the value found there.
func extract(raw json.RawMessage, path string) (json.RawMessage, bool) {
	current := raw
	for _, key := range strings.Split(path, ".") {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return nil, false
		}
		next, ok := obj[key]
		if !ok || string(next) == "null" {
			return nil, false
		}
		current = next
	}
	return current, true
}

// extractFirst tries each candidate path in order and returns the first
// value present.
func extractFirst(raw json.RawMessage, paths ...string) (json.RawMessage, bool) {
	for _, path := range paths {
		if value, ok := extract(raw, path); ok {
			return value, true
		}
	}
	return nil, false
}

// decodeList probes paths for an array payload and decodes it. A missing
// or malformed payload yields ok=false; decode errors on a present payload
// also yield ok=false so list callers degrade to an empty state.
func decodeList[T any](raw json.RawMessage, paths ...string) ([]T, bool) {
	value, ok := extractFirst(raw, paths...)
	if !ok {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(value, &items); err != nil {
		return nil, false
	}
	return items, true
}

// decodeOne probes paths for a single object payload and decodes it.
func decodeOne[T any](raw json.RawMessage, paths ...string) (*T, bool) {
	value, ok := extractFirst(raw, paths...)
	if !ok {
		return nil, false
	}
	item := new(T)
	if err := json.Unmarshal(value, item); err != nil {
		return nil, false
	}
	return item, true
}

// extractString probes paths for a string payload.
func extractString(raw json.RawMessage, paths ...string) (string, bool) {
	value, ok := extractFirst(raw, paths...)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeCount probes paths for a numeric payload. The backend serializes
// counters both as numbers and as numeric strings.
func decodeCount(raw json.RawMessage, paths ...string) (int, bool) {
	value, ok := extractFirst(raw, paths...)
	if !ok {
		return 0, false
	}
	var n int
	if err := json.Unmarshal(value, &n); err == nil {
		return n, true
	}
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return parsed, true
		}
	}
	return 0, false
}
