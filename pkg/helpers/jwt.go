package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token whose signature,
// algorithm, or payload is unacceptable. Callers never see a partially
// decoded identity.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the claims bundle embedded in a token: the account id,
// email, and role as they were at issuance. The token is the sole source
// of truth for later requests; role changes take effect only after
// re-authentication.
type Identity struct {
	AccountID int64
	Email     string
	RoleID    int64
	RoleName  string
}

type identityClaims struct {
	AccountID int64     `json:"accountid"`
	Email     string    `json:"email"`
	Role      roleClaim `json:"role"`
	jwt.RegisteredClaims
}

type roleClaim struct {
	RoleID   int64  `json:"roleid"`
	RoleName string `json:"rolename,omitempty"`
}

// TokenCodec signs identities into opaque bearer tokens and verifies
// presented tokens back into identities, using a process-wide HMAC
// secret. A TTL of zero disables expiry.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), ttl: ttl}
}

func (c *TokenCodec) Issue(id Identity) (string, error) {
	claims := &identityClaims{
		AccountID: id.AccountID,
		Email:     id.Email,
		Role:      roleClaim{RoleID: id.RoleID, RoleName: id.RoleName},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	if c.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(c.ttl))
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

func (c *TokenCodec) Verify(tokenStr string) (*Identity, error) {
	claims := &identityClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		RoleID:    claims.Role.RoleID,
		RoleName:  claims.Role.RoleName,
	}, nil
}
