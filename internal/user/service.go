package user

import (
	"context"
	"errors"
	"net/mail"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingPasswordFailed = errors.New("hashing password failed")
	ErrInvalidEmailFormat    = errors.New("invalid email format")
)

type Service interface {
	Register(ctx context.Context, email, name, password, timezone string) (*User, error)
	ReadUserByName(ctx context.Context, name string) (*User, error)
	ReadUserByNameAndEmail(ctx context.Context, name, email string) (*User, error)
	ReadUserByID(ctx context.Context, id uint) (*User, error)
	ReadAllUsers(ctx context.Context) ([]User, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

func (s *service) Register(ctx context.Context, email, name, password, timezone string) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("invalid email format", zap.String("email", email))
		return nil, ErrInvalidEmailFormat
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("failed to hash password", zap.Error(err))
		return nil, ErrHashingPasswordFailed
	}

	user := NewUser(email, name, string(hashed), timezone)
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user in repository", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *service) ReadUserByName(ctx context.Context, name string) (*User, error) {
	user, err := s.repo.ReadByName(ctx, name)
	if err != nil {
		s.logger.Warn("failed to get user by name", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *service) ReadUserByNameAndEmail(ctx context.Context, name, email string) (*User, error) {
	user, err := s.repo.ReadByNameAndEmail(ctx, name, email)
	if err != nil {
		s.logger.Warn("failed to get user by name and email", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *service) ReadUserByID(ctx context.Context, id uint) (*User, error) {
	user, err := s.repo.ReadByID(ctx, id)
	if err != nil {
		s.logger.Warn("failed to get user by ID", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *service) ReadAllUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}
