// Package cli implements the linkup commands. Each command is a thin
// view over the feed service: it reads cached data, triggers mutations,
// and renders exactly one error line per failed action.
package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/linkupapp/linkup/internal/client/feed"
	"github.com/linkupapp/linkup/internal/client/iocli"
	"github.com/linkupapp/linkup/internal/client/optimistic"
	"github.com/linkupapp/linkup/internal/client/session"
)

type Cli struct {
	io           iocli.IO
	session      *session.Service
	feed         *feed.Service
	logger       *slog.Logger
	feedLimit    int
	pollInterval time.Duration
}

func New(io iocli.IO, sess *session.Service, feedService *feed.Service, logger *slog.Logger, feedLimit int, pollInterval time.Duration) *Cli {
	return &Cli{
		io:           io,
		session:      sess,
		feed:         feedService,
		logger:       logger,
		feedLimit:    feedLimit,
		pollInterval: pollInterval,
	}
}

// requireAuth returns a friendly error when no session is present.
func (c *Cli) requireAuth() error {
	if !c.session.IsAuthenticated() {
		return errors.New("not authenticated. Please run 'linkup login' first")
	}
	return nil
}

// notify renders the single user-visible line for a failed toggle. A
// pending toggle is a notice, not an error: the first activation is
// still in flight and no second call was issued.
func (c *Cli) notifyToggleError(action string, err error) {
	if errors.Is(err, optimistic.ErrPending) {
		c.io.Printf("%s is already in progress, hold on\n", action)
		return
	}
	c.io.Printf("Error: %s failed: %v\n", action, err)
}

func PrintUsage(io iocli.IO) {
	io.Println("linkup - terminal client for Linked Posts")
	io.Println("")
	io.Println("Usage:")
	io.Println("  linkup [OPTIONS] COMMAND")
	io.Println("")
	io.Println("Options:")
	io.Println("  --version              Show version information")
	io.Println("  --server URL           API base URL")
	io.Println("  --db PATH              Path to local database (default: linkup-client.db)")
	io.Println("")
	io.Println("Commands:")
	io.Println("  register                       Create a new account")
	io.Println("  login                          Sign in and store the session")
	io.Println("  logout                         Sign out and clear local state")
	io.Println("  status                         Show session status")
	io.Println("  feed                           Show the main feed")
	io.Println("  post view|create|edit|delete   Work with a single post")
	io.Println("  like <postID>                  Toggle a like on a post")
	io.Println("  save <postID>                  Toggle a bookmark on a post")
	io.Println("  saved                          List bookmarked posts")
	io.Println("  follow <userID>                Toggle following a user")
	io.Println("  profile [userID]               Show a profile (own by default)")
	io.Println("  suggestions                    Show follow suggestions")
	io.Println("  comments <postID>              List a post's comments")
	io.Println("  comment add|edit|delete|like   Work with a comment")
	io.Println("  reply <postID> <commentID>     Reply to a comment")
	io.Println("  replies <postID> <commentID>   List replies to a comment")
	io.Println("  notifications [--watch]        Show notifications")
	io.Println("  read <notifID|all>             Mark notification(s) read")
	io.Println("  passwd                         Change the account password")
	io.Println("  upload-photo <path>            Replace the profile photo")
}
