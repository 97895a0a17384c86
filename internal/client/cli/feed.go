package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

func (c *Cli) runFeed(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	identity, err := c.session.Identity()
	if err != nil {
		return err
	}
	viewer, _ := c.feed.CurrentUser(ctx)

	posts := c.feed.Feed(ctx, c.feedLimit)
	if len(posts) == 0 {
		c.io.Println("The feed is empty.")
		return nil
	}

	c.io.Printf("=== Feed (%d posts) ===\n", len(posts))
	c.io.Println("")
	for i := range posts {
		c.renderPost(&posts[i], viewer, identity.UserID)
	}
	return nil
}

func (c *Cli) runPost(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: linkup post <view|create|edit|delete> ...")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	switch args[0] {
	case "view":
		if len(args) < 2 {
			return fmt.Errorf("usage: linkup post view <postID>")
		}
		return c.runPostView(ctx, args[1])
	case "create":
		return c.runPostCreate(ctx)
	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: linkup post edit <postID>")
		}
		return c.runPostEdit(ctx, args[1])
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: linkup post delete <postID>")
		}
		return c.runPostDelete(ctx, args[1])
	default:
		return fmt.Errorf("unknown post subcommand: %s", args[0])
	}
}

func (c *Cli) runPostView(ctx context.Context, postID string) error {
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}
	viewer, _ := c.feed.CurrentUser(ctx)

	post := c.feed.SinglePost(ctx, postID)
	if post == nil {
		c.io.Println("This post no longer exists.")
		return nil
	}

	c.renderPost(post, viewer, identity.UserID)

	comments := c.feed.Comments(ctx, postID)
	if len(comments) > 0 {
		c.io.Printf("--- %d comments ---\n", len(comments))
		for i := range comments {
			c.renderComment(&comments[i], identity.UserID, "  ")
		}
	}
	return nil
}

func (c *Cli) runPostCreate(ctx context.Context) error {
	body, err := c.io.ReadInput("What's on your mind? ")
	if err != nil {
		return fmt.Errorf("failed to read post body: %w", err)
	}
	imagePath, err := c.io.ReadInput("Image path (empty for none): ")
	if err != nil {
		return fmt.Errorf("failed to read image path: %w", err)
	}

	var create func(context.Context) error
	if imagePath == "" {
		create = func(ctx context.Context) error {
			return c.feed.CreatePost(ctx, body, "", nil)
		}
	} else {
		file, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer func() { _ = file.Close() }()
		create = func(ctx context.Context) error {
			return c.feed.CreatePost(ctx, body, filepath.Base(imagePath), file)
		}
	}

	if err := create(ctx); err != nil {
		return err
	}
	c.io.Println("Posted.")
	return nil
}

func (c *Cli) runPostEdit(ctx context.Context, postID string) error {
	body, err := c.io.ReadInput("New body: ")
	if err != nil {
		return fmt.Errorf("failed to read post body: %w", err)
	}
	imagePath, err := c.io.ReadInput("Replacement image path (empty to keep): ")
	if err != nil {
		return fmt.Errorf("failed to read image path: %w", err)
	}

	if imagePath == "" {
		if err := c.feed.UpdatePost(ctx, postID, body, "", nil); err != nil {
			return err
		}
	} else {
		file, err := os.Open(imagePath)
		if err != nil {
			return fmt.Errorf("failed to open image: %w", err)
		}
		defer func() { _ = file.Close() }()
		if err := c.feed.UpdatePost(ctx, postID, body, filepath.Base(imagePath), file); err != nil {
			return err
		}
	}
	c.io.Println("Post updated.")
	return nil
}

func (c *Cli) runPostDelete(ctx context.Context, postID string) error {
	confirm, err := c.io.ReadInput("Delete this post? (y/N): ")
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		c.io.Println("Cancelled.")
		return nil
	}
	if err := c.feed.DeletePost(ctx, postID); err != nil {
		return err
	}
	c.io.Println("Post deleted.")
	return nil
}
