package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type channelRepository struct {
	created chan *AuditLog
}

func (c *channelRepository) Create(_ context.Context, log *AuditLog) error {
	c.created <- log
	return nil
}

func (c *channelRepository) ReadAllByUserID(context.Context, uint) ([]AuditLog, error) {
	return nil, nil
}

func (c *channelRepository) ReadByID(context.Context, uint) (*AuditLog, error) {
	return nil, ErrAuditNotFound
}

func TestRecord_WritesAsynchronously(t *testing.T) {
	repo := &channelRepository{created: make(chan *AuditLog, 1)}
	rec := NewRecorder(repo, zap.NewNop())

	rec.Record(7, Entry{
		Action:     ActionAdd,
		ObjectType: "water",
		ObjectID:   42,
		Payload:    map[string]interface{}{"amount_ml": 250},
	})

	select {
	case log := <-repo.created:
		assert.Equal(t, uint(7), log.UserID)
		assert.Equal(t, ActionAdd, log.Action)
		assert.Equal(t, "water", log.ObjectType)
		assert.Equal(t, uint(42), log.ObjectID)
		require.Contains(t, log.Payload, "amount_ml")
	case <-time.After(2 * time.Second):
		t.Fatal("audit write never reached the repository")
	}
}

type failingRepository struct {
	channelRepository
}

func (f *failingRepository) Create(_ context.Context, log *AuditLog) error {
	f.created <- log
	return ErrUnresponsiveDatabase
}

func TestRecord_FailureDoesNotPanic(t *testing.T) {
	repo := &failingRepository{channelRepository{created: make(chan *AuditLog, 1)}}
	rec := NewRecorder(repo, zap.NewNop())

	rec.Record(1, Entry{Action: ActionDelete, ObjectType: "water", ObjectID: 1})

	select {
	case <-repo.created:
	case <-time.After(2 * time.Second):
		t.Fatal("audit write never attempted")
	}
}
