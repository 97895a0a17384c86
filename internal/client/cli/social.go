package cli

import (
	"context"
	"fmt"

	"github.com/linkupapp/linkup/internal/models"
)

type userProfile struct {
	user      *models.User
	own       bool
	following bool
}

func newUserProfile(user *models.User, own, following bool) *userProfile {
	if user == nil {
		return nil
	}
	return &userProfile{user: user, own: own, following: following}
}

func (c *Cli) runLike(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup like <postID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}
	postID := args[0]

	post := c.feed.SinglePost(ctx, postID)
	if post == nil {
		c.io.Println("This post no longer exists.")
		return nil
	}

	liked, err := c.feed.ToggleLike(ctx, post)
	if err != nil {
		c.notifyToggleError("like", err)
		return nil
	}
	if liked {
		c.io.Printf("Liked post by %s.\n", post.User.Name)
	} else {
		c.io.Printf("Removed like from post by %s.\n", post.User.Name)
	}
	return nil
}

func (c *Cli) runSave(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup save <postID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	saved, err := c.feed.ToggleSave(ctx, args[0])
	if err != nil {
		c.notifyToggleError("save", err)
		return nil
	}
	if saved {
		c.io.Println("Post saved.")
	} else {
		c.io.Println("Post removed from saved.")
	}
	return nil
}

func (c *Cli) runSaved(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}
	viewer, _ := c.feed.CurrentUser(ctx)

	posts := c.feed.SavedPosts(ctx)
	if len(posts) == 0 {
		c.io.Println("No saved posts.")
		return nil
	}

	c.io.Printf("=== Saved posts (%d) ===\n", len(posts))
	c.io.Println("")
	for i := range posts {
		c.renderPost(&posts[i], viewer, identity.UserID)
	}
	return nil
}

func (c *Cli) runFollow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: linkup follow <userID>")
	}
	if err := c.requireAuth(); err != nil {
		return err
	}

	following, err := c.feed.ToggleFollow(ctx, args[0])
	if err != nil {
		c.notifyToggleError("follow", err)
		return nil
	}
	if following {
		c.io.Println("Following.")
	} else {
		c.io.Println("Unfollowed.")
	}
	return nil
}

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	identity, err := c.session.Identity()
	if err != nil {
		return err
	}

	var userID string
	if len(args) > 0 {
		userID = args[0]
	} else {
		userID = identity.UserID
	}

	var profile *userProfile
	if userID == identity.UserID {
		user, err := c.feed.CurrentUser(ctx)
		if err != nil {
			return err
		}
		profile = newUserProfile(user, true, false)
	} else {
		user := c.feed.Profile(ctx, userID)
		viewer, _ := c.feed.CurrentUser(ctx)
		following := viewer != nil && viewer.IsFollowing(userID)
		profile = newUserProfile(user, false, following)
	}
	if profile == nil {
		c.io.Println("This user no longer exists.")
		return nil
	}

	c.io.Printf("=== %s ===\n", profile.user.Name)
	c.io.Printf("ID:        %s\n", profile.user.ID)
	if profile.user.Email != "" {
		c.io.Printf("Email:     %s\n", profile.user.Email)
	}
	c.io.Printf("Photo:     %s\n", profile.user.Photo)
	c.io.Printf("Followers: %d · Following: %d\n", len(profile.user.Followers), len(profile.user.Following))
	if !profile.own {
		if profile.following {
			c.io.Println("You follow this user.")
		} else {
			c.io.Println("You do not follow this user.")
		}
	}

	posts := c.feed.UserPosts(ctx, profile.user.ID, c.feedLimit)
	if len(posts) > 0 {
		c.io.Printf("\n--- %d posts ---\n", len(posts))
		viewer, _ := c.feed.CurrentUser(ctx)
		for i := range posts {
			c.renderPost(&posts[i], viewer, identity.UserID)
		}
	}
	return nil
}

func (c *Cli) runSuggestions(ctx context.Context) error {
	if err := c.requireAuth(); err != nil {
		return err
	}

	users := c.feed.Suggestions(ctx, 6)
	if len(users) == 0 {
		c.io.Println("No suggestions right now.")
		return nil
	}

	c.io.Println("=== People you may know ===")
	for _, u := range users {
		c.io.Printf("%s  %s\n", u.ID, u.Name)
	}
	c.io.Println("")
	c.io.Println("Use 'linkup follow <userID>' to follow someone.")
	return nil
}
