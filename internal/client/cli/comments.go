package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runComments(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup comments <postID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}
	postID := args[0]

	comments := c.feed.Comments(ctx, postID)
	if len(comments) == 0 {
		c.io.Println("No comments yet.")
		return nil
	}

	c.io.Printf("=== %d comments ===\n", len(comments))
	for i := range comments {
		c.renderComment(&comments[i], identity.UserID, "")
	}
	return nil
}

func (c *Cli) runComment(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand. Usage: linkup comment <add|edit|delete|like> ...")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: linkup comment add <postID>")
		}
		return c.runCommentAdd(ctx, args[1])
	case "edit":
		if len(args) < 3 {
			return fmt.Errorf("usage: linkup comment edit <postID> <commentID>")
		}
		return c.runCommentEdit(ctx, args[1], args[2])
	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: linkup comment delete <postID> <commentID>")
		}
		return c.runCommentDelete(ctx, args[1], args[2])
	case "like":
		if len(args) < 3 {
			return fmt.Errorf("usage: linkup comment like <postID> <commentID>")
		}
		return c.runCommentLike(ctx, args[1], args[2])
	default:
		return fmt.Errorf("unknown comment subcommand: %s", args[0])
	}
}

func (c *Cli) runCommentAdd(ctx context.Context, postID string) error {
	content, err := c.io.ReadInput("Comment: ")
	if err != nil {
		return fmt.Errorf("failed to read comment: %w", err)
	}
	if content == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	if err := c.feed.AddComment(ctx, postID, content); err != nil {
		return err
	}
	c.io.Println("Comment added.")
	return nil
}

func (c *Cli) runCommentEdit(ctx context.Context, postID, commentID string) error {
	content, err := c.io.ReadInput("New content: ")
	if err != nil {
		return fmt.Errorf("failed to read comment: %w", err)
	}
	if content == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	if err := c.feed.UpdateComment(ctx, postID, commentID, content); err != nil {
		return err
	}
	c.io.Println("Comment updated.")
	return nil
}

func (c *Cli) runCommentDelete(ctx context.Context, postID, commentID string) error {
	if err := c.feed.DeleteComment(ctx, postID, commentID); err != nil {
		return err
	}
	c.io.Println("Comment deleted.")
	return nil
}

func (c *Cli) runCommentLike(ctx context.Context, postID, commentID string) error {
	comments := c.feed.Comments(ctx, postID)
	for i := range comments {
		if comments[i].ID == commentID {
			if comments[i].PostID == "" {
				comments[i].PostID = postID
			}
			liked, err := c.feed.ToggleCommentLike(ctx, &comments[i])
			if err != nil {
				c.notifyToggleError("comment like", err)
				return nil
			}
			if liked {
				c.io.Println("Comment liked.")
			} else {
				c.io.Println("Comment like removed.")
			}
			return nil
		}
	}
	c.io.Println("This comment no longer exists.")
	return nil
}

func (c *Cli) runReply(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: linkup reply <postID> <commentID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	content, err := c.io.ReadInput("Reply: ")
	if err != nil {
		return fmt.Errorf("failed to read reply: %w", err)
	}
	if content == "" {
		return fmt.Errorf("reply cannot be empty")
	}
	if err := c.feed.AddReply(ctx, args[0], args[1], content); err != nil {
		return err
	}
	c.io.Println("Reply added.")
	return nil
}

func (c *Cli) runReplies(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: linkup replies <postID> <commentID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}

	replies := c.feed.Replies(ctx, args[0], args[1], 10)
	if len(replies) == 0 {
		c.io.Println("No replies yet.")
		return nil
	}

	c.io.Printf("=== %d replies ===\n", len(replies))
	for i := range replies {
		c.renderComment(&replies[i], identity.UserID, "  ")
	}
	return nil
}
