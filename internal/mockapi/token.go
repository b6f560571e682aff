package mockapi

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenValidity is the nominal lifetime communicated to callers via
// ExpiresAt. Nothing in this backend checks it; enforcement, if any, is the
// caller's responsibility.
const tokenValidity = 24 * time.Hour

// tokenClaims embeds the standard claims plus the owning user's handle.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// mintToken signs an HS256 token for userID expiring at expiresAt. The exp
// claim is informational: token validation is a stored-token lookup, never a
// signature or expiry check.
func mintToken(userID string, secret []byte, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}
