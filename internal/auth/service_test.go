package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nobirs/FoodTracker/internal/user"
	"github.com/Nobirs/FoodTracker/internal/utils"
)

type fakeUserService struct {
	byName map[string]*user.User
}

func (f *fakeUserService) Register(ctx context.Context, email, name, password, timezone string) (*user.User, error) {
	return nil, user.ErrUserNotCreated
}

func (f *fakeUserService) ReadUserByName(ctx context.Context, name string) (*user.User, error) {
	if u, ok := f.byName[name]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) ReadUserByNameAndEmail(ctx context.Context, name, email string) (*user.User, error) {
	if u, ok := f.byName[name]; ok && u.Email == email {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) ReadUserByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (f *fakeUserService) ReadAllUsers(ctx context.Context) ([]user.User, error) {
	var all []user.User
	for _, u := range f.byName {
		all = append(all, *u)
	}
	return all, nil
}

func testUser(t *testing.T, id uint, name, email, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := user.NewUser(email, name, string(hashed), "UTC")
	u.ID = id
	return u
}

func newTestService(t *testing.T, users *fakeUserService) (Service, *utils.TokenCodec, *MemoryRevocationStore) {
	t.Helper()
	codec, err := utils.NewTokenCodec(&utils.TokenConfig{
		Secret:        "session-test-secret",
		Algorithm:     "HS256",
		AccessExpiry:  30 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	require.NoError(t, err)
	store := NewMemoryRevocationStore()
	svc := NewService(users, store, codec, time.Hour, zap.NewNop())
	return svc, codec, store
}

func TestLogin_Success_ClaimsMatchUser(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, codec, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})

	access, refresh, err := svc.Login(context.Background(), "alice", "password1")
	require.NoError(t, err)

	accessClaims, err := codec.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, "alice", accessClaims.Subject)
	assert.Equal(t, "alice@example.com", accessClaims.Email)

	refreshClaims, err := codec.Verify(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshClaims.ID)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{}})

	_, _, err := svc.Login(context.Background(), "nobody", "whatever1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})

	_, _, err := svc.Login(context.Background(), "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})
	ctx := context.Background()

	_, refresh1, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)

	_, refresh2, err := svc.Refresh(ctx, refresh1, alice)
	require.NoError(t, err)
	assert.NotEqual(t, refresh1, refresh2)

	// single-use: the consumed token must never work again
	_, _, err = svc.Refresh(ctx, refresh1, alice)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// but the rotated one does
	_, _, err = svc.Refresh(ctx, refresh2, alice)
	require.NoError(t, err)
}

func TestRefresh_OwnerMismatch(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	bob := testUser(t, 2, "bob", "bob@example.com", "password2")
	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{
		"alice": alice,
		"bob":   bob,
	}})
	ctx := context.Background()

	_, refresh, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, refresh, bob)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, codec, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})

	// an access token verifies but has no jti, so it cannot refresh
	access, err := codec.IssueAccess("alice", "alice@example.com")
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), access, alice)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_ThenRefreshFails(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})
	ctx := context.Background()

	_, refresh, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))

	_, _, err = svc.Refresh(ctx, refresh, alice)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestLogout_IsIdempotent(t *testing.T) {
	t.Parallel()

	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	svc, _, _ := newTestService(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}})
	ctx := context.Background()

	_, refresh, err := svc.Login(ctx, "alice", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, refresh))
	require.NoError(t, svc.Logout(ctx, refresh))
	require.NoError(t, svc.Logout(ctx, "garbage"))
}
