package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/pkg/kvstore"
)

// ErrSelectionNotFound signals an unknown or expired booking attempt.
var ErrSelectionNotFound = errors.New("selection not found")

// Attempt is one booking attempt's persisted state: the selection plus the
// idempotency key the submission flow will send to the booking store.
type Attempt struct {
	ID             string     `json:"id"`
	IdempotencyKey string     `json:"idempotency_key"`
	Selection      *Selection `json:"selection"`
	CreatedAt      time.Time  `json:"created_at"`
}

// SelectionStore persists booking attempts through the injected key-value
// store. Attempts are TTL-bounded; an expired attempt simply disappears.
type SelectionStore interface {
	Save(ctx context.Context, attempt *Attempt) error
	Get(ctx context.Context, attemptID string) (*Attempt, error)
	Delete(ctx context.Context, attemptID string) error
}

type selectionStore struct {
	kv  kvstore.Store
	ttl time.Duration
}

// NewSelectionStore creates a SelectionStore with the given attempt TTL.
func NewSelectionStore(kv kvstore.Store, ttl time.Duration) SelectionStore {
	return &selectionStore{kv: kv, ttl: ttl}
}

func (s *selectionStore) Save(ctx context.Context, attempt *Attempt) error {
	if err := s.kv.Set(ctx, attemptKey(attempt.ID), attempt, s.ttl); err != nil {
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

func (s *selectionStore) Get(ctx context.Context, attemptID string) (*Attempt, error) {
	var attempt Attempt
	if err := s.kv.Get(ctx, attemptKey(attemptID), &attempt); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrSelectionNotFound
		}
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}
	return &attempt, nil
}

func (s *selectionStore) Delete(ctx context.Context, attemptID string) error {
	return s.kv.Delete(ctx, attemptKey(attemptID))
}

func attemptKey(id string) string {
	return "selection:" + id
}
