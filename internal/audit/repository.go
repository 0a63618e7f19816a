package audit

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAuditNotFound        = errors.New("audit record not found")
	ErrUnresponsiveDatabase = errors.New("error occurred during access to audit_logs table")
)

type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	ReadAllByUserID(ctx context.Context, userID uint) ([]AuditLog, error)
	ReadByID(ctx context.Context, id uint) (*AuditLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return ErrUnresponsiveDatabase
	}
	return nil
}

func (r *repository) ReadAllByUserID(ctx context.Context, userID uint) ([]AuditLog, error) {
	var logs []AuditLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).
		Error
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return logs, nil
}

func (r *repository) ReadByID(ctx context.Context, id uint) (*AuditLog, error) {
	var log AuditLog
	err := r.db.WithContext(ctx).First(&log, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAuditNotFound
	}
	if err != nil {
		return nil, ErrUnresponsiveDatabase
	}
	return &log, nil
}
