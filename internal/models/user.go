package models

// UserSummary is the embedded author/actor shape the backend attaches to
// posts, comments and notifications.
type UserSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// User represents a full user profile.
// The backend keeps the only authoritative copy; every instance on the
// client is a cached snapshot addressed by a query key.
type User struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Photo       string   `json:"photo"`
	Gender      string   `json:"gender"`
	DateOfBirth string   `json:"dateOfBirth"`
	Followers   []string `json:"followers"`
	Following   []string `json:"following"`
	Bookmarks   []string `json:"bookmarks"`
}

// IsFollowing reports whether userID appears in the user's following list.
// The follow relationship is derived from list membership, never stored
// as a standalone record.
func (u *User) IsFollowing(userID string) bool {
	return containsID(u.Following, userID)
}

// IsFollowedBy reports whether userID appears in the user's followers list.
func (u *User) IsFollowedBy(userID string) bool {
	return containsID(u.Followers, userID)
}

// HasBookmarked reports whether postID is in the user's bookmark list.
// Saved/bookmarked is a relationship on the user; posts carry no saved flag.
func (u *User) HasBookmarked(postID string) bool {
	return containsID(u.Bookmarks, postID)
}

// Summary returns the embedded shape for this user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Photo: u.Photo}
}

func containsID(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Identity is the summary decoded locally from the bearer token.
// It exists only while a valid credential is stored.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}
