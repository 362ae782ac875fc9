package utils // token creation and verification helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseAuthToken for every possible
// verification failure: bad signature, wrong signing method, expired,
// malformed. Collapsing the failure modes is deliberate so that
// callers cannot reveal to a client which check rejected the token.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity a token proves. Tokens are self-contained:
// the gate trusts these fields for the lifetime of the token and never
// consults the database, so later changes to the user record only take
// effect once the token expires and a fresh one is issued.
type Claims struct {
	UserID   uint64
	Username string
	Email    string
}

// NewAuthToken builds and signs an HS256 token for the given identity.
// The user id goes into the registered sub claim; username and email
// ride along as private claims. ttl bounds the token's life.
func NewAuthToken(secret string, cl Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      cl.UserID,
		"username": cl.Username,
		"email":    cl.Email,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies signature and expiry and returns the
// embedded identity. Every failure mode maps to ErrInvalidToken.
func ParseAuthToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	sub, ok := mc["sub"].(float64) // JSON numbers decode as float64
	if !ok || sub < 1 {
		return Claims{}, ErrInvalidToken
	}
	username, _ := mc["username"].(string)
	email, _ := mc["email"].(string)
	return Claims{UserID: uint64(sub), Username: username, Email: email}, nil
}
