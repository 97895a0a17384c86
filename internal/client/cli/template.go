package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/linkupapp/linkup/internal/client/optimistic"
	"github.com/linkupapp/linkup/internal/models"
)

// renderPost prints one post card. viewerID resolves the like/save
// markers; pending toggles show the optimistic value.
func (c *Cli) renderPost(post *models.Post, viewer *models.User, viewerID string) {
	liked := c.feed.Toggles().Value(
		optimistic.ToggleKey{Kind: optimistic.KindLike, EntityID: post.ID},
		post.IsLikedBy(viewerID))
	saved := false
	if viewer != nil {
		saved = c.feed.Toggles().Value(
			optimistic.ToggleKey{Kind: optimistic.KindSave, EntityID: post.ID},
			viewer.HasBookmarked(post.ID))
	}

	markers := ""
	if liked {
		markers += " [liked]"
	}
	if saved {
		markers += " [saved]"
	}

	c.io.Printf("%s  %s · %s%s\n", post.ID, post.User.Name, relativeTime(post.CreatedAt), markers)
	c.io.Printf("  %s\n", firstLine(post.Body))
	if post.Image != "" {
		c.io.Printf("  image: %s\n", post.Image)
	}
	c.io.Printf("  %d likes · %d comments\n", post.LikeCount(), post.CommentsCount)
	c.io.Println("")
}

func (c *Cli) renderComment(comment *models.Comment, viewerID string, indent string) {
	liked := c.feed.Toggles().Value(
		optimistic.ToggleKey{Kind: optimistic.KindCommentLike, EntityID: comment.ID},
		comment.IsLikedBy(viewerID))
	marker := ""
	if liked {
		marker = " [liked]"
	}
	c.io.Printf("%s%s  %s · %s%s\n", indent, comment.ID, comment.Creator.Name, relativeTime(comment.CreatedAt), marker)
	c.io.Printf("%s  %s\n", indent, firstLine(comment.Content))
	if len(comment.Likes) > 0 {
		c.io.Printf("%s  %d likes\n", indent, len(comment.Likes))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + " …"
	}
	return s
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "sometime"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
