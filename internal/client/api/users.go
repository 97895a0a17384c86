package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/linkupapp/linkup/internal/models"
	pkgapi "github.com/linkupapp/linkup/pkg/api"
)

// Signup registers a new account. Rejections surface as validation errors
// (weak password, duplicate email) for inline display.
func (c *Client) Signup(ctx context.Context, req pkgapi.SignupRequest) error {
	return c.doRequest(ctx, http.MethodPost, "/users/signup", req, nil)
}

// Signin exchanges credentials for a bearer token.
func (c *Client) Signin(ctx context.Context, req pkgapi.SigninRequest) (string, error) {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodPost, "/users/signin", req, &raw); err != nil {
		return "", err
	}
	token, ok := extractString(raw, "token", "data.token")
	if !ok || token == "" {
		return "", transportError(fmt.Errorf("signin response carried no token"))
	}
	return token, nil
}

// GetCurrentUser fetches the authenticated user's full profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*models.User, error) {
	raw, err := c.getRaw(ctx, "/users/profile-data")
	if err != nil {
		return nil, err
	}
	user, ok := decodeOne[models.User](raw, "user", "data.user", "data.data.user")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized current user envelope"))
	}
	c.normalizeUser(user)
	return user, nil
}

// GetUserProfile fetches another user's profile. A missing user surfaces as
// a not-found error.
func (c *Client) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, transportError(fmt.Errorf("user id is empty"))
	}
	raw, err := c.getRaw(ctx, "/users/"+url.PathEscape(userID)+"/profile")
	if err != nil {
		return nil, err
	}
	user, ok := decodeOne[models.User](raw, "user", "data.user", "data.data.user")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized user profile envelope"))
	}
	c.normalizeUser(user)
	return user, nil
}

// GetSuggestions fetches follow suggestions for the authenticated user.
func (c *Client) GetSuggestions(ctx context.Context, limit int) ([]models.User, error) {
	raw, err := c.getRaw(ctx, fmt.Sprintf("/users/suggestions?limit=%d", limit))
	if err != nil {
		return nil, err
	}
	users, ok := decodeList[models.User](raw, "users", "data.users", "data.data.users")
	if !ok {
		return nil, transportError(fmt.Errorf("unrecognized suggestions envelope"))
	}
	for i := range users {
		c.normalizeUser(&users[i])
	}
	return users, nil
}

// ToggleFollow flips the follow relationship between the authenticated
// user and userID.
func (c *Client) ToggleFollow(ctx context.Context, userID string) error {
	return c.doRequest(ctx, http.MethodPut, "/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// ChangePassword updates the account password.
func (c *Client) ChangePassword(ctx context.Context, req pkgapi.ChangePasswordRequest) error {
	return c.doRequest(ctx, http.MethodPatch, "/users/change-password", req, nil)
}

// UploadPhoto replaces the profile photo. The file is passed through as
// multipart unchanged.
func (c *Client) UploadPhoto(ctx context.Context, name string, photo io.Reader) error {
	files := []FilePart{{Field: "photo", Name: name, Content: photo}}
	return c.doMultipart(ctx, http.MethodPut, "/users/upload-photo", nil, files, nil)
}

func (c *Client) normalizeUser(user *models.User) {
	user.Photo = c.normalizePhoto(user.Photo)
}
