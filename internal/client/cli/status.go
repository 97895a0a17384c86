package cli

import (
	"context"
	"errors"

	"github.com/linkupapp/linkup/internal/client/session"
)

func (c *Cli) runStatus(ctx context.Context) error {
	identity, err := c.session.Identity()
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			c.io.Println("Not signed in.")
			return nil
		}
		return err
	}

	c.io.Println("=== Session ===")
	c.io.Printf("User:  %s\n", identity.Name)
	c.io.Printf("ID:    %s\n", identity.UserID)
	if identity.Email != "" {
		c.io.Printf("Email: %s\n", identity.Email)
	}

	count, err := c.feed.UnreadCount(ctx)
	if err == nil && count > 0 {
		c.io.Printf("Unread notifications: %d\n", count)
	}
	return nil
}
