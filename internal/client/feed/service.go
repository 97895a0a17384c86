// Package feed composes the remote accessors, the server-cache layer and
// the optimistic toggle registry into the operations the CLI consumes.
// Queries are cache read-throughs; mutations call the backend, then
// invalidate the query keys they affect so dependent views re-derive
// state from an authoritative refetch.
package feed

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/linkupapp/linkup/internal/client/api"
	"github.com/linkupapp/linkup/internal/client/cache"
	"github.com/linkupapp/linkup/internal/client/optimistic"
	"github.com/linkupapp/linkup/internal/client/session"
	"github.com/linkupapp/linkup/internal/models"
)

// Service is the client's feed facade.
type Service struct {
	api     *api.Client
	cache   *cache.Store
	session *session.Service
	toggles *optimistic.Registry
	logger  *slog.Logger
}

// NewService wires the feed facade.
func NewService(apiClient *api.Client, store *cache.Store, sess *session.Service, toggles *optimistic.Registry, logger *slog.Logger) *Service {
	return &Service{
		api:     apiClient,
		cache:   store,
		session: sess,
		toggles: toggles,
		logger:  logger,
	}
}

// Toggles exposes the registry for views that need pending/display state.
func (s *Service) Toggles() *optimistic.Registry { return s.toggles }

// ClearCache drops all cached data and persisted snapshots (logout).
func (s *Service) ClearCache(ctx context.Context) { s.cache.Clear(ctx) }

// --- queries (cache read-through) ---

// readQuery is the cache read-through for view queries. Fetch errors stay
// below this line: the store keeps serving the last good value across
// failures, and only when it holds none does the view degrade to its zero
// state.
func readQuery[T any](ctx context.Context, s *Service, key cache.Key, fetch func(context.Context) (T, error)) T {
	value, err := cache.ReadAs(ctx, s.cache, key, fetch)
	if err != nil {
		if api.IsNotFoundError(err) {
			s.logger.Debug("read target gone", "key", key.String())
		} else {
			s.logger.Warn("read failed with no cached fallback", "key", key.String(), "error", err)
		}
		var zero T
		return zero
	}
	return value
}

// Feed returns the main posts collection.
func (s *Service) Feed(ctx context.Context, limit int) []models.Post {
	return readQuery(ctx, s, cache.Posts(), func(ctx context.Context) ([]models.Post, error) {
		return s.api.GetPosts(ctx, limit)
	})
}

// UserPosts returns one user's posts.
func (s *Service) UserPosts(ctx context.Context, userID string, limit int) []models.Post {
	return readQuery(ctx, s, cache.UserPosts(userID), func(ctx context.Context) ([]models.Post, error) {
		return s.api.GetUserPosts(ctx, userID, limit)
	})
}

// SinglePost returns one post, or nil when it no longer exists.
func (s *Service) SinglePost(ctx context.Context, postID string) *models.Post {
	return readQuery(ctx, s, cache.Post(postID), func(ctx context.Context) (*models.Post, error) {
		return s.api.GetSinglePost(ctx, postID)
	})
}

// Comments returns a post's comments.
func (s *Service) Comments(ctx context.Context, postID string) []models.Comment {
	return readQuery(ctx, s, cache.Comments(postID), func(ctx context.Context) ([]models.Comment, error) {
		return s.api.GetComments(ctx, postID)
	})
}

// Replies returns the replies under a comment.
func (s *Service) Replies(ctx context.Context, postID, commentID string, limit int) []models.Comment {
	return readQuery(ctx, s, cache.Replies(postID, commentID), func(ctx context.Context) ([]models.Comment, error) {
		return s.api.GetReplies(ctx, postID, commentID, limit)
	})
}

// SavedPosts returns the authenticated user's bookmarked posts.
func (s *Service) SavedPosts(ctx context.Context) []models.Post {
	return readQuery(ctx, s, cache.SavedPosts(), func(ctx context.Context) ([]models.Post, error) {
		return s.api.GetSavedPosts(ctx)
	})
}

// Suggestions returns follow suggestions.
func (s *Service) Suggestions(ctx context.Context, limit int) []models.User {
	return readQuery(ctx, s, cache.Suggestions(), func(ctx context.Context) ([]models.User, error) {
		return s.api.GetSuggestions(ctx, limit)
	})
}

// Profile returns another user's profile, or nil when it cannot be read.
func (s *Service) Profile(ctx context.Context, userID string) *models.User {
	return readQuery(ctx, s, cache.UserProfile(userID), func(ctx context.Context) (*models.User, error) {
		return s.api.GetUserProfile(ctx, userID)
	})
}

// CurrentUser returns the authenticated user's full profile. Unlike the
// view queries it reports read failures: toggles derive their pre-action
// state from it and must not guess.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	if _, err := s.session.Identity(); err != nil {
		return nil, err
	}
	return cache.ReadAs(ctx, s.cache, cache.CurrentUser(), func(ctx context.Context) (*models.User, error) {
		return s.api.GetCurrentUser(ctx)
	})
}

// Notifications returns the notification list.
func (s *Service) Notifications(ctx context.Context) []models.Notification {
	return readQuery(ctx, s, cache.Notifications(), func(ctx context.Context) ([]models.Notification, error) {
		return s.api.GetNotifications(ctx)
	})
}

// UnreadCount returns the unread notification counter. Errors are reported
// so the poller can skip an update instead of pushing a false zero.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	return cache.ReadAs(ctx, s.cache, cache.UnreadCount(), func(ctx context.Context) (int, error) {
		return s.api.GetUnreadCount(ctx)
	})
}

// --- toggles (optimistic) ---

// ToggleLike flips the like on a post. Returns the value to display.
func (s *Service) ToggleLike(ctx context.Context, post *models.Post) (bool, error) {
	identity, err := s.session.Identity()
	if err != nil {
		return false, err
	}
	key := optimistic.ToggleKey{Kind: optimistic.KindLike, EntityID: post.ID}
	value, err := s.toggles.Do(ctx, key, post.IsLikedBy(identity.UserID), func(ctx context.Context) error {
		return s.api.ToggleLike(ctx, post.ID)
	})
	if err != nil {
		return value, err
	}
	s.invalidate(cache.MutationLikePost, cache.Scope{PostID: post.ID, AuthorID: post.User.ID})
	return value, nil
}

// ToggleFollow flips the follow relationship with targetID.
func (s *Service) ToggleFollow(ctx context.Context, targetID string) (bool, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	following := current != nil && current.IsFollowing(targetID)
	key := optimistic.ToggleKey{Kind: optimistic.KindFollow, EntityID: targetID}
	value, err := s.toggles.Do(ctx, key, following, func(ctx context.Context) error {
		return s.api.ToggleFollow(ctx, targetID)
	})
	if err != nil {
		return value, err
	}
	s.invalidate(cache.MutationFollowUser, cache.Scope{UserID: targetID})
	return value, nil
}

// ToggleSave flips the bookmark relationship with postID.
func (s *Service) ToggleSave(ctx context.Context, postID string) (bool, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	saved := current != nil && current.HasBookmarked(postID)
	key := optimistic.ToggleKey{Kind: optimistic.KindSave, EntityID: postID}
	value, err := s.toggles.Do(ctx, key, saved, func(ctx context.Context) error {
		return s.api.ToggleBookmark(ctx, postID)
	})
	if err != nil {
		return value, err
	}
	s.invalidate(cache.MutationSavePost, cache.Scope{PostID: postID})
	return value, nil
}

// ToggleCommentLike flips the like on a comment.
func (s *Service) ToggleCommentLike(ctx context.Context, comment *models.Comment) (bool, error) {
	identity, err := s.session.Identity()
	if err != nil {
		return false, err
	}
	key := optimistic.ToggleKey{Kind: optimistic.KindCommentLike, EntityID: comment.ID}
	value, err := s.toggles.Do(ctx, key, comment.IsLikedBy(identity.UserID), func(ctx context.Context) error {
		return s.api.ToggleCommentLike(ctx, comment.PostID, comment.ID)
	})
	if err != nil {
		return value, err
	}
	s.invalidate(cache.MutationLikeComment, cache.Scope{PostID: comment.PostID})
	return value, nil
}

// --- non-toggle mutations ---

// CreatePost publishes a new post with an optional pass-through image.
func (s *Service) CreatePost(ctx context.Context, body, imageName string, image io.Reader) error {
	identity, err := s.session.Identity()
	if err != nil {
		return err
	}
	form := api.PostForm{Body: body, ImageName: imageName, Image: image}
	return s.mutate(ctx, "create post", func(ctx context.Context) error {
		return s.api.CreatePost(ctx, form)
	}, cache.MutationCreatePost, cache.Scope{AuthorID: identity.UserID})
}

// UpdatePost replaces a post's body and optionally its image.
func (s *Service) UpdatePost(ctx context.Context, postID, body, imageName string, image io.Reader) error {
	identity, err := s.session.Identity()
	if err != nil {
		return err
	}
	form := api.PostForm{Body: body, ImageName: imageName, Image: image}
	return s.mutate(ctx, "update post", func(ctx context.Context) error {
		return s.api.UpdatePost(ctx, postID, form)
	}, cache.MutationEditPost, cache.Scope{PostID: postID, AuthorID: identity.UserID})
}

// DeletePost removes a post.
func (s *Service) DeletePost(ctx context.Context, postID string) error {
	identity, err := s.session.Identity()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "delete post", func(ctx context.Context) error {
		return s.api.DeletePost(ctx, postID)
	}, cache.MutationDeletePost, cache.Scope{PostID: postID, AuthorID: identity.UserID})
}

// AddComment creates a comment on a post.
func (s *Service) AddComment(ctx context.Context, postID, content string) error {
	return s.mutate(ctx, "add comment", func(ctx context.Context) error {
		return s.api.AddComment(ctx, postID, content)
	}, cache.MutationAddComment, cache.Scope{PostID: postID})
}

// UpdateComment replaces a comment's content.
func (s *Service) UpdateComment(ctx context.Context, postID, commentID, content string) error {
	return s.mutate(ctx, "update comment", func(ctx context.Context) error {
		return s.api.UpdateComment(ctx, postID, commentID, content)
	}, cache.MutationEditComment, cache.Scope{PostID: postID, CommentID: commentID})
}

// DeleteComment removes a comment.
func (s *Service) DeleteComment(ctx context.Context, postID, commentID string) error {
	return s.mutate(ctx, "delete comment", func(ctx context.Context) error {
		return s.api.DeleteComment(ctx, postID, commentID)
	}, cache.MutationDeleteComment, cache.Scope{PostID: postID, CommentID: commentID})
}

// AddReply creates a reply under a comment.
func (s *Service) AddReply(ctx context.Context, postID, commentID, content string) error {
	return s.mutate(ctx, "add reply", func(ctx context.Context) error {
		return s.api.AddReply(ctx, postID, commentID, content)
	}, cache.MutationAddReply, cache.Scope{PostID: postID, CommentID: commentID})
}

// UploadPhoto replaces the authenticated user's profile photo.
func (s *Service) UploadPhoto(ctx context.Context, name string, photo io.Reader) error {
	identity, err := s.session.Identity()
	if err != nil {
		return err
	}
	return s.mutate(ctx, "upload photo", func(ctx context.Context) error {
		return s.api.UploadPhoto(ctx, name, photo)
	}, cache.MutationUploadPhoto, cache.Scope{AuthorID: identity.UserID})
}

// MarkRead flips one notification's read flag.
func (s *Service) MarkRead(ctx context.Context, notificationID string) error {
	return s.mutate(ctx, "mark notification read", func(ctx context.Context) error {
		return s.api.MarkNotificationRead(ctx, notificationID)
	}, cache.MutationReadNotification, cache.Scope{})
}

// MarkAllRead flips the read flag across the whole notification set.
func (s *Service) MarkAllRead(ctx context.Context) error {
	return s.mutate(ctx, "mark all notifications read", func(ctx context.Context) error {
		return s.api.MarkAllNotificationsRead(ctx)
	}, cache.MutationReadNotification, cache.Scope{})
}

// invalidate marks every query key the settled mutation affects. Toggles
// call it directly because the registry already owns their lifecycle.
func (s *Service) invalidate(m cache.Mutation, scope cache.Scope) {
	s.cache.Invalidate(cache.Affected(m, scope)...)
}

// mutate runs one non-toggle mutation with a correlation id and, on
// success, invalidates the declared key set.
func (s *Service) mutate(ctx context.Context, name string, call func(context.Context) error, m cache.Mutation, scope cache.Scope) error {
	opID := uuid.NewString()
	s.logger.Debug("mutation started", "op_id", opID, "op", name)
	if err := call(ctx); err != nil {
		s.logger.Debug("mutation failed", "op_id", opID, "op", name, "error", err)
		return err
	}
	keys := cache.Affected(m, scope)
	s.cache.Invalidate(keys...)
	s.logger.Debug("mutation settled", "op_id", opID, "op", name, "invalidated", len(keys))
	return nil
}
