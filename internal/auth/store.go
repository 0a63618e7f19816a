package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenRevoked         = errors.New("refresh token revoked or unknown")
	ErrUnresponsiveStore    = errors.New("error occurred during access to revocation store")
	ErrMalformedStoreRecord = errors.New("malformed revocation record")
)

const revocationKeyPrefix = "refresh:"

// RevocationStore maps live refresh-token ids to their owning user. A jti
// that is absent is revoked; the store's own TTL expiry retires abandoned
// sessions without any background work on our side.
type RevocationStore interface {
	// Put records jti as live for userID, expiring after ttl.
	Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error
	// TakeUserID atomically consumes jti, returning the owning user id.
	// Concurrent callers racing on one jti get at most one winner; the
	// rest observe ErrTokenRevoked.
	TakeUserID(ctx context.Context, jti string) (uint, error)
	// Delete drops jti. Deleting an absent jti is a no-op.
	Delete(ctx context.Context, jti string) error
}

type redisRevocationStore struct {
	client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) Put(ctx context.Context, jti string, userID uint, ttl time.Duration) error {
	err := s.client.Set(ctx, revocationKeyPrefix+jti, strconv.FormatUint(uint64(userID), 10), ttl).Err()
	if err != nil {
		return ErrUnresponsiveStore
	}
	return nil
}

func (s *redisRevocationStore) TakeUserID(ctx context.Context, jti string) (uint, error) {
	// GETDEL is a single atomic command, so it doubles as the
	// compare-and-delete gate for rotation.
	val, err := s.client.GetDel(ctx, revocationKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrTokenRevoked
	}
	if err != nil {
		return 0, ErrUnresponsiveStore
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrMalformedStoreRecord
	}
	return uint(userID), nil
}

func (s *redisRevocationStore) Delete(ctx context.Context, jti string) error {
	if err := s.client.Del(ctx, revocationKeyPrefix+jti).Err(); err != nil {
		return ErrUnresponsiveStore
	}
	return nil
}
