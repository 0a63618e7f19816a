package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Recorder is the fire-and-forget sink mutating handlers call after a write.
// Failures never surface to the caller.
type Recorder interface {
	Record(userID uint, entry Entry)
}

type recorder struct {
	repo    Repository
	logger  *zap.Logger
	timeout time.Duration
}

func NewRecorder(repo Repository, logger *zap.Logger) Recorder {
	return &recorder{repo: repo, logger: logger, timeout: 5 * time.Second}
}

// Record writes the entry asynchronously. The request context is deliberately
// not used: the audit write must not be cancelled with the request.
func (r *recorder) Record(userID uint, entry Entry) {
	log := &AuditLog{
		UserID:     userID,
		Action:     entry.Action,
		ObjectType: entry.ObjectType,
		ObjectID:   entry.ObjectID,
		Payload:    entry.Payload,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.repo.Create(ctx, log); err != nil {
			r.logger.Warn("audit write failed",
				zap.Uint("user_id", userID),
				zap.String("action", string(entry.Action)),
				zap.String("object_type", entry.ObjectType),
				zap.Error(err))
		}
	}()
}
