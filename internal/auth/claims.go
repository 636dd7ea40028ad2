package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/revisitly/revisitly/internal/domain"
)

// UserFromIDToken extracts the display claims from a provider ID
// token. The token is not verified here: it was just minted by the
// provider over TLS and the remote service re-verifies it on every
// authenticated call. The User's Token field carries the raw JWT.
func UserFromIDToken(raw string) (*domain.User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}
	return &domain.User{
		Token:           raw,
		Name:            stringClaim(claims, "name"),
		Email:           stringClaim(claims, "email"),
		ProfileImageURL: stringClaim(claims, "picture"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
