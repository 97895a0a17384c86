package api

// Ack is the minimal acknowledgment mutation endpoints return. The echoed
// message is informational only; callers must not treat it as confirmed
// server state.
type Ack struct {
	Message string `json:"message"`
}

// CommentRequest represents the body of comment create and update calls.
type CommentRequest struct {
	Content string `json:"content"`
}
