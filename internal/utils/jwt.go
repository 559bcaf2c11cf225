package utils // package utils provides helpers for token creation and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token errors surfaced to the middleware and handlers.
var (
	ErrInvalidToken = errors.New("invalid token")
)

// NewToken builds and signs an HS256 JWT carrying the user identifier
// under the "userId" claim.  ttlMin controls the expiry: when it is
// zero or negative no "exp" claim is added and the token never expires.
// The TTL is plumbed through configuration but defaults to 0, matching
// the deployed behaviour of the service.
func NewToken(secret string, userID uint64, ttlMin int) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    time.Now().UTC().Unix(),
	}
	if ttlMin > 0 {
		claims["exp"] = time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute).Unix()
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseToken validates the signature and returns the user identifier
// from the "userId" claim.  Any malformed payload, wrong signing
// method or bad signature yields ErrInvalidToken.
func ParseToken(secret, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JSON numbers decode as float64.
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(id), nil
}
