package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
)

// TokenSource resolves the current bearer credential. An empty token
// with a nil error means "proceed unauthenticated".
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is a thin typed wrapper over the remote bookmark service.
// It keeps no cache between calls; the bearer token is resolved fresh
// per request unless the operation is public.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

// New creates a client for the given base URL. tokens may be nil for a
// purely public client (tests, email-link flows).
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  log,
	}
}

// List fetches all bookmarks of the signed-in user.
func (c *Client) List(ctx context.Context) ([]*domain.Bookmark, error) {
	var out bookmarksResponse
	if err := c.do(ctx, http.MethodGet, "/api/bookmarks/get", nil, false, &out); err != nil {
		return nil, err
	}
	return out.Bookmarks, nil
}

// GetByID fetches a single bookmark.
func (c *Client) GetByID(ctx context.Context, id string) (*domain.Bookmark, error) {
	var out bookmarkResponse
	path := "/api/bookmarks/get/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, false, &out); err != nil {
		return nil, err
	}
	return out.Bookmark, nil
}

// Create adds a new bookmark. The server assigns id and createdAt.
func (c *Client) Create(ctx context.Context, p BookmarkPayload) (*domain.Bookmark, error) {
	var out bookmarkResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookmarks/add", p, false, &out); err != nil {
		return nil, err
	}
	return out.Bookmark, nil
}

// Update replaces every editable field of an existing bookmark.
func (c *Client) Update(ctx context.Context, id string, p BookmarkPayload) (*domain.Bookmark, error) {
	var out bookmarkResponse
	path := "/api/bookmarks/update/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, p, false, &out); err != nil {
		return nil, err
	}
	return out.Bookmark, nil
}

// UpdateReminder patches only the reminder time of a bookmark.
func (c *Client) UpdateReminder(ctx context.Context, id, remindAt string) (*domain.Bookmark, error) {
	var out bookmarkResponse
	path := "/api/bookmarks/update/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, ReminderPatch{RemindAt: remindAt}, false, &out); err != nil {
		return nil, err
	}
	return out.Bookmark, nil
}

// Delete removes a bookmark. The remote service owns the record; the
// client holds nothing to clean up afterwards.
func (c *Client) Delete(ctx context.Context, id string) error {
	path := "/api/bookmarks/delete/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPost, path, nil, false, nil)
}

// TrackOpen records that a bookmark was opened.
func (c *Client) TrackOpen(ctx context.Context, id string) error {
	path := "/api/bookmarks/track/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPost, path, nil, false, nil)
}

// UpdateSmartReminder changes the smart follow-up settings.
func (c *Client) UpdateSmartReminder(ctx context.Context, id string, s domain.SmartFollowUp) error {
	path := "/api/bookmarks/smart-reminder/" + url.PathEscape(id)
	return c.do(ctx, http.MethodPatch, path, s, false, nil)
}

// VerifyReminderToken checks an emailed reminder token and returns the
// owning account's email. Public: the token itself is the proof.
func (c *Client) VerifyReminderToken(ctx context.Context, token string) (string, error) {
	var out verifyTokenResponse
	body := reminderTokenPayload{Token: token}
	if err := c.do(ctx, http.MethodPost, "/api/bookmarks/verify-reminder-token", body, true, &out); err != nil {
		return "", err
	}
	return out.OwnerEmail, nil
}

// UpdateReminderByToken reschedules a reminder through an emailed
// token, with no bearer auth. remindAt is an absolute RFC 3339 value.
func (c *Client) UpdateReminderByToken(ctx context.Context, token, remindAt string) error {
	body := remindByEmailPayload{Token: token, RemindAt: remindAt}
	return c.do(ctx, http.MethodPost, "/api/bookmarks/remind-by-email", body, true, nil)
}

// Login authenticates with email/password credentials.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return c.auth(ctx, "/api/auth/login", credentialsPayload{Email: email, Password: password})
}

// Signup registers a new account and signs it in.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	return c.auth(ctx, "/api/auth/signup", credentialsPayload{Name: name, Email: email, Password: password})
}

// SocialLogin exchanges an identity-provider ID token for a session.
func (c *Client) SocialLogin(ctx context.Context, idToken string) (*domain.User, error) {
	return c.auth(ctx, "/api/auth/social-login", socialLoginPayload{IDToken: idToken})
}

func (c *Client) auth(ctx context.Context, path string, body any) (*domain.User, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, path, body, true, &out); err != nil {
		return nil, err
	}
	user := &domain.User{Token: out.Token}
	if out.User != nil {
		user.Name = out.User.Name
		user.Email = out.User.Email
		user.ProfileImageURL = out.User.ProfileImageURL
	}
	return user, nil
}

// do performs one round-trip. out, when non-nil, must embed envelope
// via one of the response types; the shared envelope is always decoded
// to apply the success/message contract.
func (c *Client) do(ctx context.Context, method, path string, body any, public bool, out any) error {
	op := method + " " + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request for %s: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if !public && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("resolve bearer token for %s: %w", op, err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Non-JSON body: only a handled error if the status told us more
		return &NetworkError{Op: op, Err: fmt.Errorf("status %d with unparseable body: %w", resp.StatusCode, err)}
	}

	if !env.Success {
		if c.logger != nil {
			c.logger.Debug("operation rejected by service",
				logger.String("op", op),
				logger.Int("status", resp.StatusCode),
				logger.String("message", env.Message))
		}
		return &OperationError{Message: env.Message}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// success=true with a failing status is a broken transport
		return &NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &NetworkError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}
