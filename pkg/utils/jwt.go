package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"petclinic-client/internal/domain"
)

// The client never holds the signing secret, so tokens are parsed without
// verification. The claims are only used for display and for deciding
// whether a stored session is worth presenting; the API stays the authority.
var parser = jwt.NewParser()

func parseMapClaims(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("no token found")
	}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	return claims, nil
}

// ExtractClaims reads the user identity out of an access token.
// Both "sub" and the "id"/"userId" spellings used by the API are accepted.
func ExtractClaims(tokenString string) (*domain.Claims, error) {
	mapClaims, err := parseMapClaims(tokenString)
	if err != nil {
		return nil, err
	}

	userID := firstString(mapClaims, "sub", "id", "userId", "_id")
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)

	return &domain.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}

// TokenExpiry returns the exp claim. ok is false when the token has none.
func TokenExpiry(tokenString string) (time.Time, bool, error) {
	mapClaims, err := parseMapClaims(tokenString)
	if err != nil {
		return time.Time{}, false, err
	}
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false, nil
	}
	return exp.Time, true, nil
}

// IsExpired reports whether the token's exp is at or before now.
// Tokens without exp never expire from the client's point of view.
func IsExpired(tokenString string, now time.Time) bool {
	exp, ok, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return ok && !now.Before(exp)
}

func firstString(claims jwt.MapClaims, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
