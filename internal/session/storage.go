package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	storagePrefix = "session:v1:"
	opTimeout     = 2 * time.Second
)

// Storage implements fiber.Storage on top of Redis. Session identifiers are
// HMAC-hashed with the session key before use, so raw session ids never
// appear in the store.
type Storage struct {
	client *redis.Client
	secret []byte
}

// NewStorage builds a Redis session storage keyed with the given secret.
func NewStorage(client *redis.Client, secret []byte) *Storage {
	return &Storage{client: client, secret: secret}
}

func (s *Storage) hashKey(key string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(key))
	return storagePrefix + hex.EncodeToString(mac.Sum(nil))
}

// Get returns the stored session payload, or nil when absent.
func (s *Storage) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.hashKey(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Set stores a session payload with the given expiry.
func (s *Storage) Set(key string, val []byte, exp time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.client.Set(ctx, s.hashKey(key), val, exp).Err()
}

// Delete removes a session.
func (s *Storage) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return s.client.Del(ctx, s.hashKey(key)).Err()
}

// Reset removes every stored session.
func (s *Storage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, storagePrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close is a no-op; the Redis client is owned by the caller.
func (s *Storage) Close() error {
	return nil
}
