package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserNotCreated       = errors.New("user not created")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to users table")
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	ReadByID(ctx context.Context, id uint) (*User, error)
	ReadByName(ctx context.Context, name string) (*User, error)
	ReadByNameAndEmail(ctx context.Context, name, email string) (*User, error)
	ReadAll(ctx context.Context) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new account. The database's unique index on email is the
// authority for duplicates: a 23505 from a concurrent registration comes back
// as ErrEmailAlreadyExists as well, so both racers cannot win.
func (r *repository) Create(ctx context.Context, user *User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" &&
			strings.Contains(pgErr.ConstraintName, "email") {
			return ErrEmailAlreadyExists
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailAlreadyExists
		}
		return ErrUserNotCreated
	}
	return nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		First(&user, id).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) ReadByName(ctx context.Context, name string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&user).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) ReadByNameAndEmail(ctx context.Context, name, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Where("email = ?", email).
		First(&user).
		Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &user, nil
}

func (r *repository) ReadAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Find(&users).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return users, nil
}
