package audit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/user"
)

type fakeRepository struct {
	mu     sync.Mutex
	nextID uint
	logs   map[uint]AuditLog
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{nextID: 1, logs: make(map[uint]AuditLog)}
}

func (f *fakeRepository) Create(_ context.Context, log *AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	log.ID = f.nextID
	f.nextID++
	f.logs[log.ID] = *log
	return nil
}

func (f *fakeRepository) ReadAllByUserID(_ context.Context, userID uint) ([]AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []AuditLog
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRepository) ReadByID(_ context.Context, id uint) (*AuditLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.logs[id]
	if !ok {
		return nil, ErrAuditNotFound
	}
	return &l, nil
}

// newAuditRouter wires the handler behind a stub guard that pins the caller.
func newAuditRouter(t *testing.T, repo Repository, current *user.User) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/")
	group.Use(func(c *gin.Context) {
		c.Set(user.ContextUserKey, current)
	})
	NewHandler(group, repo, zap.NewNop())
	return router
}

func auditCaller(id uint) *user.User {
	u := user.NewUser("a@example.com", "alice", "hash", "UTC")
	u.ID = id
	return u
}

func TestAdd_BindsOwnerFromGuard(t *testing.T) {
	repo := newFakeRepository()
	router := newAuditRouter(t, repo, auditCaller(7))

	body := `{"action":"ADD","object_type":"water","object_id":3,"payload":{"amount_ml":250}}`
	req := httptest.NewRequest(http.MethodPost, "/audit/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.logs, 1)
	stored := repo.logs[1]
	assert.Equal(t, uint(7), stored.UserID)
	assert.Equal(t, ActionAdd, stored.Action)
	assert.Equal(t, "water", stored.ObjectType)
	assert.Equal(t, uint(3), stored.ObjectID)
}

func TestAdd_RejectsMissingAction(t *testing.T) {
	repo := newFakeRepository()
	router := newAuditRouter(t, repo, auditCaller(7))

	req := httptest.NewRequest(http.MethodPost, "/audit/add", strings.NewReader(`{"object_type":"water"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.logs)
}

func TestReadByID_ForeignRecordLooksMissing(t *testing.T) {
	repo := newFakeRepository()
	require.NoError(t, repo.Create(context.Background(), &AuditLog{UserID: 1, Action: ActionAdd, ObjectType: "water"}))
	router := newAuditRouter(t, repo, auditCaller(2))

	req := httptest.NewRequest(http.MethodGet, "/audit/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
