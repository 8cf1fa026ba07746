package tokens

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	RoleClaim    = "role"
	BearerPrefix = "Bearer "
)

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// FromBearer returns the token carried by an Authorization header value.
// The prefix is matched exactly: "bearer x" and "Bearer " yield false.
func FromBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", false
	}
	return token, true
}

// Signature returns the last segment of a compact JWT, or "" if the
// token does not have three segments.
func Signature(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ""
	}
	return parts[2]
}
