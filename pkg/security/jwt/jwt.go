package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/finmark/auth-service/pkg/auth"
)

// Verification failures callers must be able to tell apart.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Identity is the claim set extracted from a verified token.
type Identity struct {
	SubjectID string
	Role      auth.Role
}

// Claims includes the registered claim set plus the account role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Codec issues and verifies HS256 tokens with a fixed validity window.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewCodec(secret, issuer string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

func (c *Codec) Issue(ctx context.Context, account auth.Account) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: string(account.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token string. Past-expiry tokens yield
// ErrTokenExpired; any other failure (bad signature, malformed
// structure, wrong issuer) yields ErrTokenInvalid.
func (c *Codec) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrTokenExpired
		}
		return Identity{}, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, ErrTokenInvalid
	}
	if c.issuer != "" && claims.Issuer != c.issuer {
		return Identity{}, ErrTokenInvalid
	}
	return Identity{SubjectID: claims.Subject, Role: auth.Role(claims.Role)}, nil
}
