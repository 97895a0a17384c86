package models

import "time"

// NotificationType enumerates the events the backend notifies about.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationShare   NotificationType = "share"
	NotificationFollow  NotificationType = "follow"
)

// Notification represents one entry in the authenticated user's
// notification list. The recipient is implicit.
type Notification struct {
	ID        string           `json:"_id"`
	Sender    UserSummary      `json:"sender"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
