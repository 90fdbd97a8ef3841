// Package redis implements the fitness repository as a single JSON document
// stored under one Redis key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"fittrack/internal/domain"
)

// DefaultKey is the key the document is stored under.
const DefaultKey = "fitness-tracker-data"

var _ domain.FitnessRepository = (*Repository)(nil)

// Repository stores FitnessData as JSON under key.
type Repository struct {
	client *redis.Client
	key    string
}

// New creates a Repository on client. An empty key means DefaultKey.
func New(client *redis.Client, key string) *Repository {
	if key == "" {
		key = DefaultKey
	}
	return &Repository{client: client, key: key}
}

// Dial connects to addr and verifies the connection.
func Dial(ctx context.Context, addr, key string) (*Repository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return New(client, key), nil
}

// Close closes the client.
func (r *Repository) Close() error {
	return r.client.Close()
}

// Ping checks the connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Load reads and decodes the document. A missing key is empty data.
func (r *Repository) Load(ctx context.Context) (domain.FitnessData, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.FitnessData{}, nil
	}
	if err != nil {
		return domain.FitnessData{}, fmt.Errorf("failed to get fitness data: %w", err)
	}
	var data domain.FitnessData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.FitnessData{}, fmt.Errorf("failed to unmarshal fitness data: %w", err)
	}
	return data, nil
}

// Save encodes and writes the whole document.
func (r *Repository) Save(ctx context.Context, data domain.FitnessData) error {
	if data.Entries == nil {
		data.Entries = []domain.DailyEntry{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal fitness data: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save fitness data: %w", err)
	}
	return nil
}

// Clear deletes the key.
func (r *Repository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear fitness data: %w", err)
	}
	return nil
}
