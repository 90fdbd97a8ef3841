// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sync"

	"fittrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu   sync.Mutex
	data domain.FitnessData
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{}
}

// Ensure interfaces are met.
var _ domain.FitnessRepository = (*DB)(nil)

// Load returns a copy of the stored data.
func (db *DB) Load(ctx context.Context) (domain.FitnessData, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.data.Clone(), nil
}

// Save replaces the stored data with a copy of d.
func (db *DB) Save(ctx context.Context, d domain.FitnessData) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data = d.Clone()
	return nil
}

// Clear drops everything.
func (db *DB) Clear(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.data = domain.FitnessData{}
	return nil
}
