package models

import "time"

// Comment represents a comment on a post, optionally with loaded replies.
type Comment struct {
	ID           string      `json:"_id"`
	PostID       string      `json:"post"`
	Creator      UserSummary `json:"commentCreator"`
	Content      string      `json:"content"`
	CreatedAt    time.Time   `json:"createdAt"`
	Likes        []string    `json:"likes"`
	RepliesCount int         `json:"repliesCount"`
	Replies      []Comment   `json:"replies,omitempty"`
}

// IsLikedBy reports whether userID is in the comment's likers list.
func (c *Comment) IsLikedBy(userID string) bool {
	return containsID(c.Likes, userID)
}
