package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config holds the two independent HMAC secrets and token lifetimes.
// Separate secrets mean a leaked access secret cannot mint refresh tokens
// and vice versa.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Claims is the verified payload carried by both token kinds.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Pair is an access/refresh token pair issued together.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer signs and verifies token pairs. It is a pure function of
// claims + secrets + clock; it performs no I/O.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("token: both secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: TTLs must be positive")
	}
	return &Issuer{cfg: cfg}, nil
}

type signOptions struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// SignOption overrides issuance parameters for a single IssuePair call.
type SignOption func(*signOptions)

func WithAccessTTL(d time.Duration) SignOption {
	return func(o *signOptions) { o.accessTTL = d }
}

func WithRefreshTTL(d time.Duration) SignOption {
	return func(o *signOptions) { o.refreshTTL = d }
}

// IssuePair signs an access and a refresh token for the given subject.
func (i *Issuer) IssuePair(sub, email string, opts ...SignOption) (Pair, error) {
	so := signOptions{accessTTL: i.cfg.AccessTTL, refreshTTL: i.cfg.RefreshTTL}
	for _, opt := range opts {
		opt(&so)
	}

	access, err := sign(sub, email, so.accessTTL, i.cfg.AccessSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := sign(sub, email, so.refreshTTL, i.cfg.RefreshSecret)
	if err != nil {
		return Pair{}, fmt.Errorf("sign refresh token: %w", err)
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess verifies an access token's signature and expiry.
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return parse(tokenStr, i.cfg.AccessSecret)
}

// ParseRefresh verifies a refresh token's signature and expiry. Note that a
// valid signature alone does not make a refresh token live; the auth service
// additionally checks it against the session cache.
func (i *Issuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return parse(tokenStr, i.cfg.RefreshSecret)
}

func sign(sub, email string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: sub,
			// iat/exp have second granularity; the jti keeps tokens
			// issued within the same second distinct so rotation always
			// produces a new refresh token.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse(tokenStr string, secret []byte) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}
	return claims, nil
}
