package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/linkupapp/linkup/internal/models"
)

// GetPosts fetches the main feed.
func (c *Client) GetPosts(ctx context.Context, limit int) ([]models.Post, error) {
	raw, err := c.getRaw(ctx, fmt.Sprintf("/posts?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	posts, ok := decodeList[models.Post](raw, "posts", "data.posts", "data.data.posts")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized posts envelope"))
	}
	for i := range posts {
		c.normalizePost(&posts[i])
	}
	return posts, nil
}

// GetUserPosts fetches one user's posts.
func (c *Client) GetUserPosts(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	if userID == "" {
		return nil, transportError(fmt.Errorf("user id is empty"))
	}
	path := fmt.Sprintf("/users/%s/posts?limit=%d", url.PathEscape(userID), limit)
	raw, err := c.getRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	posts, ok := decodeList[models.Post](raw, "posts", "data.posts", "data.data.posts")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized user posts envelope"))
	}
	for i := range posts {
		c.normalizePost(&posts[i])
	}
	return posts, nil
}

// GetSinglePost fetches one post by id. A missing post surfaces as a
// not-found error.
func (c *Client) GetSinglePost(ctx context.Context, postID string) (*models.Post, error) {
	if postID == "" {
		return nil, transportError(fmt.Errorf("post id is empty"))
	}
	raw, err := c.getRaw(ctx, "/posts/"+url.PathEscape(postID))
	if err != nil {
		return nil, err
	}
	post, ok := decodeOne[models.Post](raw, "post", "data.post", "data.data.post")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized post envelope"))
	}
	c.normalizePost(post)
	return post, nil
}

// GetSavedPosts fetches the authenticated user's bookmarked posts.
func (c *Client) GetSavedPosts(ctx context.Context) ([]models.Post, error) {
	raw, err := c.getRaw(ctx, "/users/bookmarks")
	if err != nil {
		return nil, err
	}
	posts, ok := decodeList[models.Post](raw, "bookmarks", "data.bookmarks", "data.data.bookmarks")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized bookmarks envelope"))
	}
	for i := range posts {
		c.normalizePost(&posts[i])
	}
	return posts, nil
}

// PostForm carries the multipart payload for post create and update calls.
// Image is optional and passed through unchanged.
type PostForm struct {
	Body      string
	ImageName string
	Image     io.Reader
}

func (f PostForm) parts() (map[string]string, []FilePart) {
	fields := map[string]string{"body": f.Body}
	var files []FilePart
	if f.Image != nil {
		files = append(files, FilePart{Field: "image", Name: f.ImageName, Content: f.Image})
	}
	return fields, files
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, form PostForm) error {
	fields, files := form.parts()
	return c.doMultipart(ctx, http.MethodPost, "/posts", fields, files, nil)
}

// UpdatePost replaces a post's body and, when provided, its image.
func (c *Client) UpdatePost(ctx context.Context, postID string, form PostForm) error {
	fields, files := form.parts()
	return c.doMultipart(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID), fields, files, nil)
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	return c.doRequest(ctx, http.MethodDelete, "/posts/"+url.PathEscape(postID), nil, nil)
}

// ToggleLike flips the authenticated user's like on a post. The echoed
// acknowledgment is not authoritative; callers re-derive the state from a
// collection refetch.
func (c *Client) ToggleLike(ctx context.Context, postID string) error {
	return c.doRequest(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID)+"/like", nil, nil)
}

// ToggleBookmark flips the authenticated user's bookmark on a post.
func (c *Client) ToggleBookmark(ctx context.Context, postID string) error {
	return c.doRequest(ctx, http.MethodPut, "/posts/"+url.PathEscape(postID)+"/bookmark", nil, nil)
}

func (c *Client) normalizePost(post *models.Post) {
	post.User.Photo = c.normalizePhoto(post.User.Photo)
}
