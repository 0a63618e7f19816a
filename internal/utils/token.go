package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrUnknownAlgorithm    = errors.New("unknown signing algorithm")
	ErrUnexpectedAlgorithm = errors.New("unexpected signing algorithm")
)

// Claims is the common claim set for both token kinds. ID (the jti) is only
// populated on refresh tokens.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies the service's bearer tokens. Both kinds are
// signed with the same shared secret; key rotation is not modeled.
type TokenCodec struct {
	secret        []byte
	method        jwt.SigningMethod
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewTokenCodec(cfg *TokenConfig) (*TokenCodec, error) {
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, ErrUnknownAlgorithm
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnknownAlgorithm
	}
	return &TokenCodec{
		secret:        []byte(cfg.Secret),
		method:        method,
		accessExpiry:  cfg.AccessExpiry,
		refreshExpiry: cfg.RefreshExpiry,
	}, nil
}

// IssueAccess mints a stateless short-lived token. Nothing about it is
// persisted; expiry and signature are the whole story.
func (c *TokenCodec) IssueAccess(name, email string) (string, error) {
	return c.sign(name, email, "", c.accessExpiry)
}

// IssueRefresh mints a long-lived token carrying a fresh random jti and
// returns the jti alongside the signed string so the caller can persist it.
func (c *TokenCodec) IssueRefresh(name, email string) (token string, jti string, err error) {
	jti = uuid.NewString()
	token, err = c.sign(name, email, jti, c.refreshExpiry)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

func (c *TokenCodec) sign(name, email, jti string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Verify decodes and validates a token of either kind. Malformed, expired and
// badly signed tokens all collapse into ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, ErrUnexpectedAlgorithm
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
