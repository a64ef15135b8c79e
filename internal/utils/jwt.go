package utils // package utils provides helpers for password hashing and token issuing

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails parsing, signature or
// expiry checks.  Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token; it identifies the user
// and nothing else.
type RefreshClaims struct {
	ID uint64 `json:"id"`
	jwt.RegisteredClaims
}

// SignedToken is a serialized JWT along with its expiry.
type SignedToken struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// TokenIssuer signs and verifies access and refresh tokens.  Access and
// refresh tokens use different secrets so one can never stand in for the
// other.
type TokenIssuer struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Now           func() time.Time
}

// NewTokenIssuer builds a TokenIssuer with the real clock.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		AccessSecret:  []byte(accessSecret),
		RefreshSecret: []byte(refreshSecret),
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Now:           time.Now,
	}
}

func (t *TokenIssuer) now() time.Time {
	if t.Now == nil {
		return time.Now().UTC()
	}
	return t.Now().UTC()
}

func (t *TokenIssuer) registered(ttl time.Duration) (jwt.RegisteredClaims, time.Time) {
	now := t.now()
	exp := now.Add(ttl)
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
	}, exp
}

// NewAccessToken signs an HS256 access token carrying id, email and role.
func (t *TokenIssuer) NewAccessToken(id uint64, email, role string) (SignedToken, error) {
	rc, exp := t.registered(t.AccessTTL)
	claims := AccessClaims{ID: id, Email: email, Role: role, RegisteredClaims: rc}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.AccessSecret)
	if err != nil {
		return SignedToken{}, fmt.Errorf("sign access token: %w", err)
	}
	return SignedToken{Token: signed, Expires: exp}, nil
}

// NewRefreshToken signs an HS256 refresh token carrying only the user id.
func (t *TokenIssuer) NewRefreshToken(id uint64) (SignedToken, error) {
	rc, exp := t.registered(t.RefreshTTL)
	// jti keeps two refresh tokens issued in the same second distinct.
	jti, err := randomHex(8)
	if err != nil {
		return SignedToken{}, err
	}
	rc.ID = jti
	claims := RefreshClaims{ID: id, RegisteredClaims: rc}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
	if err != nil {
		return SignedToken{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return SignedToken{Token: signed, Expires: exp}, nil
}

// ParseAccessToken verifies signature and expiry of an access token.
func (t *TokenIssuer) ParseAccessToken(raw string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := t.parse(raw, claims, t.AccessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefreshToken verifies signature and expiry of a refresh token.
func (t *TokenIssuer) ParseRefreshToken(raw string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parse(raw, claims, t.RefreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t *TokenIssuer) parse(raw string, claims jwt.Claims, secret []byte) error {
	tok, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return ErrInvalidToken
	}
	return nil
}
