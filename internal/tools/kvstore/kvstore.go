package kvstore

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type Engine interface {
	Store(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// Store keeps deflate-compressed JSON values under expiring keys.
type Store struct {
	engine Engine
}

func NewRedisStore(redisClient *redis.Client) *Store {
	return &Store{
		engine: &redisEngine{
			redis: redisClient,
		},
	}
}

func deflate(uncompressed []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, _ := flate.NewWriter(&buffer, flate.BestSpeed)

	_, err := writer.Write(uncompressed)
	if err != nil {
		return nil, err
	}

	err = writer.Close()
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func inflate(compressed []byte) ([]byte, error) {
	buffer := bytes.NewReader(compressed)
	reader := flate.NewReader(buffer)
	defer reader.Close()

	var out bytes.Buffer
	_, err := out.ReadFrom(reader)
	if err != nil {
		return []byte{}, err
	}

	return out.Bytes(), nil
}

// Encode is exported for tests that need the stored representation.
func Encode(value any) ([]byte, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return deflate(bytes)
}

func (s *Store) Store(ctx context.Context, key string, value any, ttl time.Duration) error {
	compressed, err := Encode(value)
	if err != nil {
		return err
	}

	return s.engine.Store(ctx, key, compressed, ttl)
}

// Fetch reports false without an error when the key does not exist.
func (s *Store) Fetch(ctx context.Context, key string, destination any) (bool, error) {
	value, err := s.engine.Fetch(ctx, key)
	if err != nil {
		return false, err
	}

	if value == nil {
		return false, nil
	}

	uncompressed, err := inflate(value)
	if err != nil {
		return false, err
	}

	err = json.Unmarshal(uncompressed, destination)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	return s.engine.Delete(ctx, key)
}

type redisEngine struct {
	redis *redis.Client
}

func (e *redisEngine) Store(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := e.redis.SetEx(ctx, key, value, ttl).Result()
	return err
}

func (e *redisEngine) Fetch(ctx context.Context, key string) ([]byte, error) {
	value, err := e.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (e *redisEngine) Delete(ctx context.Context, key string) (bool, error) {
	deleted, err := e.redis.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return deleted > 0, nil
}
