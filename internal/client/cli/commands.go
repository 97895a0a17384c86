package cli

import (
	"context"
	"fmt"
)

// Run dispatches one command. The returned error is the single
// user-visible failure line; main prints it and sets the exit code.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "feed":
		return c.runFeed(ctx)
	case "post":
		return c.runPost(ctx, args)
	case "like":
		return c.runLike(ctx, args)
	case "save":
		return c.runSave(ctx, args)
	case "saved":
		return c.runSaved(ctx)
	case "follow":
		return c.runFollow(ctx, args)
	case "profile":
		return c.runProfile(ctx, args)
	case "suggestions":
		return c.runSuggestions(ctx)
	case "comments":
		return c.runComments(ctx, args)
	case "comment":
		return c.runComment(ctx, args)
	case "reply":
		return c.runReply(ctx, args)
	case "replies":
		return c.runReplies(ctx, args)
	case "notifications":
		return c.runNotifications(ctx, args)
	case "read":
		return c.runRead(ctx, args)
	case "passwd":
		return c.runPasswd(ctx)
	case "upload-photo":
		return c.runUploadPhoto(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
