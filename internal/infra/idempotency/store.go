package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "scheduling:idempotency:"
	pendingValue = "pending"

	// DefaultTTL время жизни ключа идемпотентности
	DefaultTTL = 24 * time.Hour
)

// Store хранит соответствие ключа идемпотентности и созданного занятия.
// Ключ сначала резервируется значением pending, после коммита перезаписывается ID занятия
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище ключей идемпотентности
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Reserve резервирует ключ.
// Возвращает (0, true, nil), если ключ свободен и зарезервирован вызывающим.
// Если по ключу уже создано занятие, возвращает его ID и reserved=false.
// Если запрос с ключом ещё выполняется, возвращает ErrInProgress
func (s *Store) Reserve(ctx context.Context, scope, key string) (lessonID int64, reserved bool, err error) {
	redisKey := storageKey(scope, key)

	ok, err := s.client.SetNX(ctx, redisKey, pendingValue, s.ttl).Result()
	if err != nil {
		return 0, false, fmt.Errorf("%w: Reserve - setnx: %v", ErrStore, err)
	}
	if ok {
		return 0, true, nil
	}

	value, err := s.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		// ключ истёк между SETNX и GET
		return s.Reserve(ctx, scope, key)
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: Reserve - get: %v", ErrStore, err)
	}

	if value == pendingValue {
		return 0, false, ErrInProgress
	}

	lessonID, err = strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: Reserve - corrupted value %q", ErrStore, value)
	}

	return lessonID, false, nil
}

// Complete сохраняет ID созданного занятия под ключом
func (s *Store) Complete(ctx context.Context, scope, key string, lessonID int64) error {
	if err := s.client.Set(ctx, storageKey(scope, key), lessonID, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Complete - set: %v", ErrStore, err)
	}
	return nil
}

// Release снимает резерв, чтобы запрос можно было повторить после ошибки
func (s *Store) Release(ctx context.Context, scope, key string) error {
	if err := s.client.Del(ctx, storageKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("%w: Release - del: %v", ErrStore, err)
	}
	return nil
}

func storageKey(scope, key string) string {
	hash := sha256.Sum256([]byte(scope + ":" + key))
	return keyPrefix + base64.RawURLEncoding.EncodeToString(hash[:])
}
