package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"contacts-api/internal/session"
	"contacts-api/internal/store"
	"contacts-api/internal/token"
)

// bcryptCost matches the original credential scheme; existing hashes stay
// valid across deployments.
const bcryptCost = 10

// AuthService orchestrates sign-up, sign-in, refresh rotation, and sign-out
// over the user store, the token issuer, and the session cache.
type AuthService struct {
	users  *store.UserStore
	cache  *session.Cache
	issuer *token.Issuer
	logger *slog.Logger
}

func NewAuthService(users *store.UserStore, cache *session.Cache, issuer *token.Issuer, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, cache: cache, issuer: issuer, logger: logger}
}

// SignUp registers a new account and signs it in. Returns ErrEmailTaken if
// the email is already registered.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (token.Pair, error) {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return token.Pair{}, fmt.Errorf("lookup email: %w", err)
	}
	if existing != nil {
		return token.Pair{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return token.Pair{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(name, email, string(hash))
	if err != nil {
		return token.Pair{}, fmt.Errorf("create user: %w", err)
	}

	return s.startSession(ctx, user.ID, user.Email)
}

// SignIn verifies credentials and rotates in a fresh token pair. Unknown
// email and wrong password return the same ErrInvalidCredentials so callers
// cannot probe which emails are registered.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (token.Pair, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return token.Pair{}, fmt.Errorf("lookup email: %w", err)
	}
	if user == nil {
		return token.Pair{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return token.Pair{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user.ID, user.Email)
}

// Refresh exchanges a live refresh token for a new pair. The presented token
// must carry a valid signature AND match the cached token for its subject
// byte for byte; a rotated-out token fails the second check even though its
// signature still verifies. Every success invalidates the prior token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return token.Pair{}, ErrInvalidRefreshToken
	}

	cached, err := s.cache.Get(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return token.Pair{}, ErrInvalidRefreshToken
		}
		return token.Pair{}, fmt.Errorf("read session cache: %w", err)
	}
	if cached != refreshToken {
		// Either a superseded token being replayed or a forged-but-signed
		// token for a session that was rotated away. Reject both the same.
		s.logger.Warn("stale refresh token presented", "user_id", claims.Subject)
		return token.Pair{}, ErrInvalidRefreshToken
	}

	return s.startSession(ctx, claims.Subject, claims.Email)
}

// SignOut revokes the user's session by dropping the cached refresh token.
func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	if err := s.cache.Delete(ctx, userID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) startSession(ctx context.Context, userID, email string) (token.Pair, error) {
	pair, err := s.issuer.IssuePair(userID, email)
	if err != nil {
		return token.Pair{}, fmt.Errorf("issue tokens: %w", err)
	}
	if err := s.cache.Store(ctx, userID, pair.RefreshToken); err != nil {
		return token.Pair{}, fmt.Errorf("store refresh token: %w", err)
	}
	return pair, nil
}
