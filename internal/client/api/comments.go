package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/linkupapp/linkup/internal/models"
	pkgapi "github.com/linkupapp/linkup/pkg/api"
)

// GetComments fetches a post's comments.
func (c *Client) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if postID == "" {
		return nil, transportError(fmt.Errorf("post id is empty"))
	}
	raw, err := c.getRaw(ctx, commentPath(postID, ""))
	if err != nil {
		return nil, err
	}
	comments, ok := decodeList[models.Comment](raw, "comments", "data.comments", "data.data.comments")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized comments envelope"))
	}
	for i := range comments {
		c.normalizeComment(&comments[i])
	}
	return comments, nil
}

// GetReplies fetches replies to a comment.
func (c *Client) GetReplies(ctx context.Context, postID, commentID string, limit int) ([]models.Comment, error) {
	if postID == "" || commentID == "" {
		return nil, transportError(fmt.Errorf("comment path is incomplete"))
	}
	path := fmt.Sprintf("%s/replies?limit=%d", commentPath(postID, commentID), limit)
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	replies, ok := decodeList[models.Comment](raw, "replies", "data.replies", "data.data.replies")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized replies envelope"))
	}
	for i := range replies {
		c.normalizeComment(&replies[i])
	}
	return replies, nil
}

// AddComment creates a comment on a post.
func (c *Client) AddComment(ctx context.Context, postID, content string) error {
	req := pkgapi.CommentRequest{Content: content}
	return c.doRequest(ctx, http.MethodPost, commentPath(postID, ""), req, nil)
}

// UpdateComment replaces a comment's content.
func (c *Client) UpdateComment(ctx context.Context, postID, commentID, content string) error {
	req := pkgapi.CommentRequest{Content: content}
	return c.doRequest(ctx, http.MethodPut, commentPath(postID, commentID), req, nil)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	return c.doRequest(ctx, http.MethodDelete, commentPath(postID, commentID), nil, nil)
}

// ToggleCommentLike flips the authenticated user's like on a comment.
func (c *Client) ToggleCommentLike(ctx context.Context, postID, commentID string) error {
	return c.doRequest(ctx, http.MethodPut, commentPath(postID, commentID)+"/like", nil, nil)
}

// AddReply creates a reply under a comment. The endpoint only accepts
// multipart bodies.
func (c *Client) AddReply(ctx context.Context, postID, commentID, content string) error {
	fields := map[string]string{"content": content}
	return c.doMultipart(ctx, http.MethodPost, commentPath(postID, commentID)+"/replies", fields, nil, nil)
}

func commentPath(postID, commentID string) string {
	var b strings.Builder
	b.WriteString("/posts/")
	b.WriteString(url.PathEscape(postID))
	b.WriteString("/comments")
	if commentID != "" {
		b.WriteString("/")
		b.WriteString(url.PathEscape(commentID))
	}
	return b.String()
}

func (c *Client) normalizeComment(comment *models.Comment) {
	comment.Creator.Photo = c.normalizePhoto(comment.Creator.Photo)
	for i := range comment.Replies {
		c.normalizeComment(&comment.Replies[i])
	}
}
