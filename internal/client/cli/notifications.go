package cli

import (
	"context"
	"fmt"

	"github.com/linkupapp/linkup/internal/client/feed"
	"github.com/linkupapp/linkup/internal/models"
)

func (c *Cli) runNotifications(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	watch := len(args) > 0 && args[0] == "--watch"
	if watch {
		return c.watchNotifications(ctx)
	}

	notifs := c.feed.Notifications(ctx)
	count, _ := c.feed.UnreadCount(ctx)

	if len(notifs) == 0 {
		c.io.Println("No notifications.")
		return nil
	}

	c.io.Printf("=== Notifications (%d unread) ===\n", count)
	for _, n := range notifs {
		c.renderNotification(&n)
	}
	c.io.Println("")
	c.io.Println("Use 'linkup read <notifID>' or 'linkup read all' to mark as read.")
	return nil
}

func (c *Cli) renderNotification(n *models.Notification) {
	marker := " "
	if !n.Read {
		marker = "*"
	}
	c.io.Printf("%s %s  %s %s · %s\n", marker, n.ID, n.Sender.Name, describeNotification(n.Type), relativeTime(n.CreatedAt))
}

func describeNotification(t models.NotificationType) string {
	switch t {
	case models.NotificationLike:
		return "liked your post"
	case models.NotificationComment:
		return "commented on your post"
	case models.NotificationShare:
		return "shared your post"
	case models.NotificationFollow:
		return "started following you"
	default:
		return string(t)
	}
}

// watchNotifications keeps the unread badge current until interrupted.
func (c *Cli) watchNotifications(ctx context.Context) error {
	c.io.Println("Watching notifications. Press Ctrl+C to stop.")
	poller := feed.NewPoller(c.feed, c.pollInterval, func(count int) {
		if count > 0 {
			c.io.Printf("%d unread notification(s)\n", count)
		}
	}, c.logger)
	poller.Run(ctx)
	return nil
}

func (c *Cli) runRead(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup read <notifID|all>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	if args[0] == "all" {
		if err := c.feed.MarkAllRead(ctx); err != nil {
			return err
		}
		c.io.Println("All notifications marked read.")
		return nil
	}

	if err := c.feed.MarkRead(ctx, args[0]); err != nil {
		return err
	}
	c.io.Println("Notification marked read.")
	return nil
}
