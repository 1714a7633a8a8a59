package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Store maps opaque session tokens to user identities. Sessions live only
// here; the User record carries no transport state.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Destroy(ctx context.Context, token string) error
}

type RedisStore struct {
	client *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, secret string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Create issues a fresh token for the user. Only the HMAC of the token is
// used as the redis key, so the store alone cannot be replayed as a cookie.
func (s *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) Resolve(ctx context.Context, token string) (int64, error) {
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrUnauthorized
		}
		return 0, err
	}
	return strconv.ParseInt(val, 10, 64)
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *RedisStore) key(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return "session:" + hex.EncodeToString(mac.Sum(nil))
}

var _ Store = (*RedisStore)(nil)
