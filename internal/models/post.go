package models

import "time"

// Post represents a feed post with its embedded author summary.
type Post struct {
	ID            string      `json:"_id"`
	User          UserSummary `json:"user"`
	Body          string      `json:"body"`
	Image         string      `json:"image"`
	CreatedAt     time.Time   `json:"createdAt"`
	Likes         []string    `json:"likes"`
	CommentsCount int         `json:"commentsCount"`
}

// IsLikedBy reports whether userID is in the post's likers list.
func (p *Post) IsLikedBy(userID string) bool {
	return containsID(p.Likes, userID)
}

// LikeCount returns the number of likers.
func (p *Post) LikeCount() int {
	return len(p.Likes)
}
