package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fittrack/internal/domain"
)

// Store owns the persisted FitnessData. Reads take a snapshot; writes are
// serialised so that a load-modify-save cycle never interleaves with another.
type Store struct {
	repo domain.FitnessRepository
	mu   sync.Mutex
	now  func() time.Time
}

// NewStore creates a Store backed by repo using the wall clock.
func NewStore(repo domain.FitnessRepository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// WithClock replaces the clock used for "today" and write timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Now returns the store's current time.
func (s *Store) Now() time.Time { return s.now() }

// Today returns the calendar date of Now in the server's zone.
func (s *Store) Today() domain.Date { return domain.DateOf(s.now()) }

// Snapshot loads the current state.
func (s *Store) Snapshot(ctx context.Context) (domain.FitnessData, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return domain.FitnessData{}, fmt.Errorf("load: %w", err)
	}
	return data, nil
}

// Update applies fn to a copy of the current state and saves the result. If
// fn or the save fails, the stored state is left as it was.
func (s *Store) Update(ctx context.Context, fn func(*domain.FitnessData) error) (domain.FitnessData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return domain.FitnessData{}, fmt.Errorf("load: %w", err)
	}
	next := current.Clone()
	if err := fn(&next); err != nil {
		return domain.FitnessData{}, err
	}
	saved := s.now().UnixMilli()
	next.LastSaved = &saved
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.FitnessData{}, fmt.Errorf("save: %w", err)
	}
	return next, nil
}

// Clear removes all stored data.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}
