package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (c *Cli) runPasswd(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	current, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	next, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	repeat, err := c.io.ReadPassword("Repeat new password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if next != repeat {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.session.ChangePassword(ctx, current, next); err != nil {
		return err
	}
	c.io.Println("Password changed. Please sign in again.")
	return nil
}

func (c *Cli) runUploadPhoto(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup upload-photo <path>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := c.feed.UploadPhoto(ctx, filepath.Base(args[0]), file); err != nil {
		return err
	}
	c.io.Println("Profile photo updated.")
	return nil
}
