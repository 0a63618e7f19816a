package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nobirs/FoodTracker/internal/user"
	"github.com/Nobirs/FoodTracker/internal/utils"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrTokenIssueFailed    = errors.New("token issue failed")
)

// Service orchestrates the session lifecycle: issue on login, single-use
// rotation on refresh, revocation on logout. All session state lives in the
// revocation store; the service itself is stateless.
type Service interface {
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	Refresh(ctx context.Context, refreshToken string, current *user.User) (newAccessToken, newRefreshToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshTTL() time.Duration
}

type service struct {
	users  user.Service
	store  RevocationStore
	codec  *utils.TokenCodec
	logger *zap.Logger

	refreshTTL time.Duration
}

func NewService(
	users user.Service,
	store RevocationStore,
	codec *utils.TokenCodec,
	refreshTTL time.Duration,
	logger *zap.Logger,
) Service {
	return &service{
		users:      users,
		store:      store,
		codec:      codec,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

func (s *service) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *service) Login(ctx context.Context, username, password string) (string, string, error) {
	u, err := s.users.ReadUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", "", ErrIncorrectPassword
	}

	access, err := s.codec.IssueAccess(u.Name, u.Email)
	if err != nil {
		s.logger.Error("failed to issue access token", zap.Error(err))
		return "", "", ErrTokenIssueFailed
	}

	refresh, jti, err := s.codec.IssueRefresh(u.Name, u.Email)
	if err != nil {
		s.logger.Error("failed to issue refresh token", zap.Error(err))
		return "", "", ErrTokenIssueFailed
	}
	if err := s.store.Put(ctx, jti, u.ID, s.refreshTTL); err != nil {
		s.logger.Error("failed to store refresh token record", zap.Error(err))
		return "", "", err
	}

	return access, refresh, nil
}

// Refresh rotates a presented refresh token. The old jti is consumed before
// the replacement becomes visible, so a token can never be redeemed twice:
// of two concurrent calls with the same token, exactly one wins.
func (s *service) Refresh(ctx context.Context, refreshToken string, current *user.User) (string, string, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil || claims.ID == "" {
		return "", "", ErrInvalidRefreshToken
	}

	userID, err := s.store.TakeUserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}
	if userID != current.ID {
		s.logger.Warn("refresh token owner mismatch",
			zap.Uint("stored", userID), zap.Uint("current", current.ID))
		return "", "", ErrInvalidRefreshToken
	}

	access, err := s.codec.IssueAccess(current.Name, current.Email)
	if err != nil {
		s.logger.Error("failed to issue access token", zap.Error(err))
		return "", "", ErrTokenIssueFailed
	}
	refresh, jti, err := s.codec.IssueRefresh(current.Name, current.Email)
	if err != nil {
		s.logger.Error("failed to issue refresh token", zap.Error(err))
		return "", "", ErrTokenIssueFailed
	}
	if err := s.store.Put(ctx, jti, current.ID, s.refreshTTL); err != nil {
		s.logger.Error("failed to store rotated refresh token record", zap.Error(err))
		return "", "", err
	}

	return access, refresh, nil
}

// Logout revokes the presented refresh token. It never fails: a malformed,
// expired or already-revoked token leaves nothing to do.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil || claims.ID == "" {
		return nil
	}
	if err := s.store.Delete(ctx, claims.ID); err != nil {
		s.logger.Warn("failed to delete refresh token record on logout", zap.Error(err))
	}
	return nil
}
