package seats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/shared/config"
	"cinebook/pkg/kvstore"
	"cinebook/pkg/logger"

	"github.com/google/uuid"
)

// ErrSeatNotFound signals a toggle on a seat id absent from the session's
// inventory.
var ErrSeatNotFound = errors.New("seat not found in session inventory")

// inventoryCacheTTL bounds how stale the seat map shown to a user can get.
const inventoryCacheTTL = 30 * time.Second

// Inventory is the authoritative seat list for one session. Synthetic marks
// re-keyed fallback data (see loadInventory).
type Inventory struct {
	SessionID string `json:"session_id"`
	Seats     []Seat `json:"seats"`
	Synthetic bool   `json:"synthetic"`
}

// Service owns seat inventory and selection state for booking attempts.
type Service interface {
	// Inventory
	GetInventory(ctx context.Context, sessionID string) (*Inventory, error)

	// Attempt lifecycle
	OpenAttempt(ctx context.Context, sessionID string) (*Attempt, error)
	GetAttempt(ctx context.Context, attemptID string) (*Attempt, error)
	Toggle(ctx context.Context, attemptID, seatID string) (*Attempt, error)
	ClearAttempt(ctx context.Context, attemptID string) error
	CloseAttempt(ctx context.Context, attemptID string) error

	// ResolveAttempt returns the attempt together with its session's
	// inventory and base price; the booking assembler consumes this.
	ResolveAttempt(ctx context.Context, attemptID string) (*Attempt, *Inventory, *catalog.Session, error)
}

type service struct {
	client  Client
	store   SelectionStore
	catalog catalog.Service
	kv      kvstore.Store
	cfg     *config.Config
	log     *logger.Logger
}

func NewService(client Client, store SelectionStore, catalogService catalog.Service, kv kvstore.Store, cfg *config.Config, log *logger.Logger) Service {
	return &service{
		client:  client,
		store:   store,
		catalog: catalogService,
		kv:      kv,
		cfg:     cfg,
		log:     log,
	}
}

func (s *service) GetInventory(ctx context.Context, sessionID string) (*Inventory, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	return s.loadInventory(ctx, sessionID)
}

func (s *service) OpenAttempt(ctx context.Context, sessionID string) (*Attempt, error) {
	// Session must exist and satisfy the price invariant before seats can
	// be selected against it.
	if _, err := s.catalog.GetSessionByID(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("cannot open attempt: %w", err)
	}

	attempt := &Attempt{
		ID:             uuid.New().String(),
		IdempotencyKey: uuid.New().String(),
		Selection:      NewSelection(sessionID, s.cfg.Booking.MaxSeatsPerBooking),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *service) GetAttempt(ctx context.Context, attemptID string) (*Attempt, error) {
	return s.store.Get(ctx, attemptID)
}

func (s *service) Toggle(ctx context.Context, attemptID, seatID string) (*Attempt, error) {
	attempt, err := s.store.Get(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	inventory, err := s.loadInventory(ctx, attempt.Selection.SessionID)
	if err != nil {
		return nil, err
	}

	seat, ok := findSeat(inventory.Seats, seatID)
	if !ok {
		return nil, ErrSeatNotFound
	}

	if err := attempt.Selection.Toggle(seat); err != nil {
		// Rejected toggles leave the stored attempt untouched.
		return nil, err
	}

	if err := s.store.Save(ctx, attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *service) ClearAttempt(ctx context.Context, attemptID string) error {
	attempt, err := s.store.Get(ctx, attemptID)
	if err != nil {
		return err
	}

	attempt.Selection.Clear()
	return s.store.Save(ctx, attempt)
}

func (s *service) CloseAttempt(ctx context.Context, attemptID string) error {
	return s.store.Delete(ctx, attemptID)
}

func (s *service) ResolveAttempt(ctx context.Context, attemptID string) (*Attempt, *Inventory, *catalog.Session, error) {
	attempt, err := s.store.Get(ctx, attemptID)
	if err != nil {
		return nil, nil, nil, err
	}

	session, err := s.catalog.GetSessionByID(ctx, attempt.Selection.SessionID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	inventory, err := s.loadInventory(ctx, attempt.Selection.SessionID)
	if err != nil {
		return nil, nil, nil, err
	}

	return attempt, inventory, session, nil
}

// loadInventory fetches the store's full seat list and scopes it to the
// session. Fallback policy (single, deliberate): when no seat matches the
// requested session but the store holds a canonical set, that set is re-keyed
// to the requested session with synthetic ids. The result is flagged and
// logged so operators know the data is synthetic. An empty store stays a hard
// empty state.
func (s *service) loadInventory(ctx context.Context, sessionID string) (*Inventory, error) {
	cacheKey := "inventory:" + sessionID
	var cached Inventory
	if err := s.kv.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	all, err := s.client.GetSeats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load seats: %w", err)
	}

	scoped := make([]Seat, 0, len(all))
	for _, seat := range all {
		if seat.SessionID == sessionID {
			scoped = append(scoped, seat)
		}
	}

	inventory := &Inventory{SessionID: sessionID, Seats: scoped}

	if len(scoped) == 0 && len(all) > 0 {
		inventory.Seats = rekeySeats(all, sessionID)
		inventory.Synthetic = true
		s.log.LogSyntheticInventory(ctx, sessionID, len(inventory.Seats))
	}

	if err := s.kv.Set(ctx, cacheKey, inventory, inventoryCacheTTL); err != nil {
		s.log.LogCollaboratorFailure(ctx, "kvstore", cacheKey, err)
	}

	return inventory, nil
}

// rekeySeats maps the store's canonical seat set (the session the store
// actually holds seats for) onto the requested session. Synthetic ids embed
// the session and label so they stay unique and recognizable.
func rekeySeats(all []Seat, sessionID string) []Seat {
	canonical := all[0].SessionID
	rekeyed := make([]Seat, 0, len(all))
	for _, seat := range all {
		if seat.SessionID != canonical {
			continue
		}
		seat.ID = fmt.Sprintf("%s-%s", sessionID, seat.Label())
		seat.SessionID = sessionID
		rekeyed = append(rekeyed, seat)
	}
	return rekeyed
}

func findSeat(seats []Seat, id string) (Seat, bool) {
	for _, seat := range seats {
		if seat.ID == id {
			return seat, true
		}
	}
	return Seat{}, false
}
