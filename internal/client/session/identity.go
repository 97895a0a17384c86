package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/linkupapp/linkup/internal/models"
)

// DecodeIdentity derives the identity summary from the bearer token
// without verifying its signature. Verification is the backend's job; the
// client only needs the embedded claims for display and for deriving
// toggle state (is this my post, am I following this user).
//
// The backend has shipped several claim layouts; the user id is probed
// across the known key names in order.
func DecodeIdentity(token string) (*models.Identity, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	id := firstClaim(claims, "user", "userId", "_id", "uid")
	if id == "" {
		return nil, fmt.Errorf("token carries no user id claim")
	}

	return &models.Identity{
		UserID: id,
		Name:   firstClaim(claims, "name", "username"),
		Email:  firstClaim(claims, "email"),
		Role:   firstClaim(claims, "role"),
	}, nil
}

func firstClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}
