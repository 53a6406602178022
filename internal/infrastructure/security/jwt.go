package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/expensio/expense-tracker/internal/core/ports"
)

// JWTIssuer implements ports.TokenIssuer with HS256-signed JWTs whose claims
// are the sanitized user identity.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer returns an issuer signing with the given secret. A zero ttl
// falls back to 8 hours; a negative ttl is honored as-is and yields tokens
// that are already expired.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl == 0 {
		ttl = 8 * time.Hour
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTIssuer) Issue(claims ports.TokenClaims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       claims.ID,
		"name":     claims.Name,
		"lastName": claims.LastName,
		"username": claims.Username,
		"email":    claims.Email,
		"exp":      time.Now().Add(i.ttl).Unix(),
	})
	return t.SignedString(i.secret)
}

func (i *JWTIssuer) Verify(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &ports.TokenClaims{
		ID:       stringClaim(claims, "id"),
		Name:     stringClaim(claims, "name"),
		LastName: stringClaim(claims, "lastName"),
		Username: stringClaim(claims, "username"),
		Email:    stringClaim(claims, "email"),
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
