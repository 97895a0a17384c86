// Package api implements the remote data accessors for the Linked Posts
// backend. Each accessor performs exactly one HTTP call, normalizes the
// backend's inconsistently shaped response envelope into a fixed in-memory
// shape, and translates failures into the package's error taxonomy.
//
// All accessors return typed errors. Mutation errors feed the optimistic
// rollback path; read errors feed the cache, which decides whether a
// stale last-good value can stand in before a view degrades to empty.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	pkgapi "github.com/linkupapp/linkup/pkg/api"
)

// TokenSource supplies the current bearer credential. Only the session
// lifecycle writes the credential; everything else reads it through this
// interface.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Client is the HTTP client for the backend REST API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	staticBase  string
	tokens      TokenSource
	logger      *slog.Logger
	onAuthError func(ctx context.Context)
}

// NewClient creates an API client. staticBase is the prefix applied to
// relative photo references (usually the same host as baseURL).
func NewClient(baseURL, staticBase string, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		staticBase: staticBase,
		tokens:     tokens,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OnAuthError registers a hook invoked whenever the backend rejects the
// credential (401). The session uses it to tear itself down.
func (c *Client) OnAuthError(fn func(ctx context.Context)) {
	c.onAuthError = fn
}

// doRequest performs one JSON request. body may be nil; result may be nil
// for callers that only care about success.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return transportError(fmt.Errorf("failed to marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(jsonData)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, bodyReader, contentType, result)
}

// doMultipart performs one multipart/form-data request. File contents are
// passed through unchanged; the client does no image processing.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return transportError(fmt.Errorf("failed to write form field %s: %w", key, err))
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return transportError(fmt.Errorf("failed to create form file %s: %w", f.Field, err))
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return transportError(fmt.Errorf("failed to copy form file %s: %w", f.Field, err))
		}
	}
	if err := w.Close(); err != nil {
		return transportError(fmt.Errorf("failed to finalize multipart body: %w", err))
	}
	return c.do(ctx, method, path, &buf, w.FormDataContentType(), result)
}

// FilePart is one file attached to a multipart request.
type FilePart struct {
	Field   string
	Name    string
	Content io.Reader
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, result any) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return transportError(fmt.Errorf("failed to create request: %w", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	// The backend expects the bearer credential in a custom "token"
	// header, not the standard Authorization scheme.
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("token", token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(fmt.Errorf("request failed: %w", err))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := ""
		var errResp pkgapi.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			message = errResp.Text()
		}
		apiErr := statusError(resp.StatusCode, message)
		c.logger.Debug("request rejected",
			"method", method, "path", path,
			"status", resp.StatusCode, "kind", apiErr.Kind.String())
		if apiErr.Kind == KindAuth && c.onAuthError != nil {
			c.onAuthError(ctx)
		}
		return apiErr
	}

	if result != nil {
		if raw, ok := result.(*json.RawMessage); ok {
			*raw = append((*raw)[:0], respBody...)
			return nil
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return transportError(fmt.Errorf("failed to decode response: %w", err))
		}
	}
	return nil
}

// getRaw fetches path and returns the raw response body for envelope
// probing by the typed accessors.
func (c *Client) getRaw(ctx context.Context, path string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
