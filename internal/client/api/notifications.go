package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/linkupapp/linkup/internal/models"
)

// GetNotifications fetches the authenticated user's notification list.
func (c *Client) GetNotifications(ctx context.Context) ([]models.Notification, error) {
	raw, err := c.getRaw(ctx, "/notifications")
	if err != nil {
		return nil, err
	}
	notifs, ok := decodeList[models.Notification](raw, "notifications", "data.notifications", "data.data.notifications")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized notifications envelope"))
	}
	for i := range notifs {
		notifs[i].Sender.Photo = c.normalizePhoto(notifs[i].Sender.Photo)
	}
	return notifs, nil
}

// GetUnreadCount fetches the unread notification counter.
func (c *Client) GetUnreadCount(ctx context.Context) (int, error) {
	raw, err := c.getRaw(ctx, "/notifications/unread-count")
	if err != nil {
		return 0, err
	}
	count, ok := decodeCount(raw, "unreadCount", "data.unreadCount", "data.data.unreadCount")
	if !ok {
		return 0, transportError(fmt.Errorf("unrecognized unread count envelope"))
	}
	return count, nil
}

// MarkNotificationRead flips one notification's read flag.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	path := "/notifications/" + url.PathEscape(notificationID) + "/read"
	return c.doRequest(ctx, http.MethodPatch, path, nil, nil)
}

// MarkAllNotificationsRead flips the read flag across the whole set.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPatch, "/notifications/read-all", nil, nil)
}
