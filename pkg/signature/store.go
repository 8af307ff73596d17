package signature

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Saved is a stored signature snapshot.
type Saved struct {
	ID        string    `json:"id"`
	Data      Data      `json:"data"`
	Config    Style     `json:"config"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps saved signatures in process memory. Entries are lost on
// restart. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Saved
	now   func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty in-memory store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save records a copy of data and style under a fresh id.
func (s *Store) Save(ctx context.Context, data Data, style Style) (Saved, error) {
	if err := ctx.Err(); err != nil {
		return Saved{}, err
	}
	item := Saved{
		ID:        uuid.NewString(),
		Data:      data.Clone(),
		Config:    style,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

// Get returns the saved signature with the given id.
func (s *Store) Get(ctx context.Context, id string) (Saved, error) {
	if err := ctx.Err(); err != nil {
		return Saved{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := slices.IndexFunc(s.items, func(it Saved) bool { return it.ID == id })
	if idx < 0 {
		return Saved{}, ErrNotFound
	}
	return s.items[idx], nil
}

// Len returns the number of saved signatures.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
