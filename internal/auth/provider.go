package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
)

// IdentityProvider is the live identity-provider session. Token always
// refreshes so callers never hold a stale bearer across a long-lived
// process.
type IdentityProvider interface {
	// Active reports whether a live provider session exists.
	Active() bool
	// Token force-refreshes the session and returns the bearer token.
	Token(ctx context.Context) (string, error)
	// Identity returns the user view carried by the provider's ID token.
	Identity(ctx context.Context) (*domain.User, error)
	// SignOut revokes the session. Errors are advisory; local state is
	// dropped regardless.
	SignOut(ctx context.Context) error
}

// OAuthOptions configures the oauth2-backed provider session.
type OAuthOptions struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	RevokeURL    string // optional
	RefreshToken string // empty = no live session
	Scopes       []string
}

// OAuthProvider maintains a provider session from a long-lived refresh
// token. Every Token call mints a fresh access token, which is the
// force-refresh behavior the rest of the system relies on.
type OAuthProvider struct {
	cfg       *oauth2.Config
	revokeURL string
	logger    logger.Logger

	mu           sync.Mutex
	refreshToken string
}

// NewOAuthProvider builds the provider session bridge.
func NewOAuthProvider(opts OAuthOptions, log logger.Logger) *OAuthProvider {
	return &OAuthProvider{
		cfg: &oauth2.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: opts.TokenURL},
			Scopes:       opts.Scopes,
		},
		revokeURL:    opts.RevokeURL,
		logger:       log,
		refreshToken: opts.RefreshToken,
	}
}

func (p *OAuthProvider) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshToken != ""
}

// Token exchanges the refresh token for a fresh credential. The ID
// token is preferred as the bearer when the provider issues one; the
// access token is the fallback.
func (p *OAuthProvider) Token(ctx context.Context) (string, error) {
	tok, err := p.refresh(ctx)
	if err != nil {
		return "", err
	}
	if id, ok := tok.Extra("id_token").(string); ok && id != "" {
		return id, nil
	}
	return tok.AccessToken, nil
}

// Identity decodes the ID token claims into a user view.
func (p *OAuthProvider) Identity(ctx context.Context) (*domain.User, error) {
	tok, err := p.refresh(ctx)
	if err != nil {
		return nil, err
	}
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		// Provider without OIDC claims: token only, no profile
		return &domain.User{Token: tok.AccessToken}, nil
	}
	user, err := UserFromIDToken(raw)
	if err != nil {
		return nil, fmt.Errorf("decode identity claims: %w", err)
	}
	return user, nil
}

// SignOut revokes the refresh token (best effort) and forgets it.
func (p *OAuthProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	token := p.refreshToken
	p.refreshToken = ""
	p.mu.Unlock()

	if token == "" || p.revokeURL == "" {
		return nil
	}

	form := url.Values{"token": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke provider session: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (p *OAuthProvider) refresh(ctx context.Context) (*oauth2.Token, error) {
	p.mu.Lock()
	rt := p.refreshToken
	p.mu.Unlock()
	if rt == "" {
		return nil, fmt.Errorf("no provider session")
	}

	// A TokenSource seeded with only a refresh token always hits the
	// token endpoint, so every call yields a fresh credential.
	ts := p.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: rt})
	tok, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh provider token: %w", err)
	}

	// Some providers rotate the refresh token on every exchange
	if tok.RefreshToken != "" && tok.RefreshToken != rt {
		p.mu.Lock()
		p.refreshToken = tok.RefreshToken
		p.mu.Unlock()
		if p.logger != nil {
			p.logger.Debug("provider rotated refresh token")
		}
	}
	return tok, nil
}
