package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/catalog"
	"cinebook/internal/notifications"
	"cinebook/internal/seats"
	"cinebook/internal/shared/config"
	"cinebook/internal/webhooks"
	"cinebook/pkg/kvstore"
	"cinebook/pkg/logger"
)

type fakeSeats struct {
	attempt    *seats.Attempt
	inventory  *seats.Inventory
	session    *catalog.Session
	resolveErr error
	resolves   int
	closed     []string
}

func (f *fakeSeats) GetInventory(ctx context.Context, sessionID string) (*seats.Inventory, error) {
	return f.inventory, nil
}
func (f *fakeSeats) OpenAttempt(ctx context.Context, sessionID string) (*seats.Attempt, error) {
	return f.attempt, nil
}
func (f *fakeSeats) GetAttempt(ctx context.Context, attemptID string) (*seats.Attempt, error) {
	return f.attempt, nil
}
func (f *fakeSeats) Toggle(ctx context.Context, attemptID, seatID string) (*seats.Attempt, error) {
	return f.attempt, nil
}
func (f *fakeSeats) ClearAttempt(ctx context.Context, attemptID string) error { return nil }
func (f *fakeSeats) CloseAttempt(ctx context.Context, attemptID string) error {
	f.closed = append(f.closed, attemptID)
	return nil
}
func (f *fakeSeats) ResolveAttempt(ctx context.Context, attemptID string) (*seats.Attempt, *seats.Inventory, *catalog.Session, error) {
	f.resolves++
	if f.resolveErr != nil {
		return nil, nil, nil, f.resolveErr
	}
	return f.attempt, f.inventory, f.session, nil
}

type fakeBookingCatalog struct {
	movie *catalog.Movie
}

func (f *fakeBookingCatalog) GetMovies(ctx context.Context) ([]catalog.Movie, error) {
	return nil, nil
}
func (f *fakeBookingCatalog) GetMovieByID(ctx context.Context, id string) (*catalog.Movie, error) {
	if f.movie == nil {
		return nil, errors.New("movie not found")
	}
	return f.movie, nil
}
func (f *fakeBookingCatalog) GetSessions(ctx context.Context) ([]catalog.Session, error) {
	return nil, nil
}
func (f *fakeBookingCatalog) GetSessionByID(ctx context.Context, id string) (*catalog.Session, error) {
	return nil, nil
}
func (f *fakeBookingCatalog) GetSessionsByMovieID(ctx context.Context, movieID string) ([]catalog.Session, error) {
	return nil, nil
}

type fakeStoreClient struct {
	bookings    []Booking
	createErr   error
	created     []Booking
	nextID      string
	lastIdemKey string
}

func (f *fakeStoreClient) CreateBooking(ctx context.Context, booking *Booking, idempotencyKey string) (*Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastIdemKey = idempotencyKey
	created := *booking
	created.ID = f.nextID
	f.created = append(f.created, created)
	f.bookings = append(f.bookings, created)
	return &created, nil
}

func (f *fakeStoreClient) GetBookings(ctx context.Context) ([]Booking, error) {
	return f.bookings, nil
}

func (f *fakeStoreClient) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, errors.New("booking not found")
}

type fakeRepo struct {
	records map[string]*BookingRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: map[string]*BookingRecord{}}
}

func (f *fakeRepo) Create(ctx context.Context, record *BookingRecord) error {
	f.records[record.ExternalID] = record
	return nil
}

func (f *fakeRepo) GetByExternalID(ctx context.Context, externalID string) (*BookingRecord, error) {
	record, ok := f.records[externalID]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeRepo) GetByAttemptID(ctx context.Context, attemptID string) (*BookingRecord, error) {
	for _, record := range f.records {
		if record.AttemptID == attemptID {
			copied := *record
			return &copied, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]BookingRecord, error) {
	var out []BookingRecord
	for _, record := range f.records {
		if record.UserID == userID {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status string) ([]BookingRecord, error) {
	var out []BookingRecord
	for _, record := range f.records {
		if record.Status == status {
			out = append(out, *record)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkCancelled(ctx context.Context, externalID string, cancelledAt time.Time) error {
	record, ok := f.records[externalID]
	if !ok {
		return ErrRecordNotFound
	}
	record.Status = StatusCancelled
	record.CancelledAt = &cancelledAt
	return nil
}

type fakeDispatcher struct {
	confirmations []*webhooks.BookingConfirmationPayload
	reminders     []*webhooks.SessionReminderPayload
	audits        []*webhooks.AuditLogPayload
	cancellations []*webhooks.CancellationPayload
}

func (f *fakeDispatcher) SendBookingConfirmation(ctx context.Context, p *webhooks.BookingConfirmationPayload) {
	f.confirmations = append(f.confirmations, p)
}
func (f *fakeDispatcher) SendSessionReminder(ctx context.Context, p *webhooks.SessionReminderPayload) {
	f.reminders = append(f.reminders, p)
}
func (f *fakeDispatcher) SendAuditLog(ctx context.Context, p *webhooks.AuditLogPayload) {
	f.audits = append(f.audits, p)
}
func (f *fakeDispatcher) SendCancellation(ctx context.Context, p *webhooks.CancellationPayload) {
	f.cancellations = append(f.cancellations, p)
}

type fakeProducer struct {
	events []*notifications.BookingEvent
}

func (f *fakeProducer) PublishBookingEvent(ctx context.Context, event *notifications.BookingEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeProducer) Close() error { return nil }

type bookingFixture struct {
	service    Service
	seats      *fakeSeats
	store      *fakeStoreClient
	repo       *fakeRepo
	dispatcher *fakeDispatcher
	producer   *fakeProducer
	kv         kvstore.Store
}

func newBookingFixture() *bookingFixture {
	selection := seats.NewSelection("1", 10)
	selection.SeatIDs = []string{"s1", "s2"}

	fx := &bookingFixture{
		seats: &fakeSeats{
			attempt: &seats.Attempt{
				ID:             "attempt-1",
				IdempotencyKey: "idem-1",
				Selection:      selection,
				CreatedAt:      time.Now(),
			},
			inventory: &seats.Inventory{
				SessionID: "1",
				Seats: []seats.Seat{
					{ID: "s1", SessionID: "1", Row: "A", Number: 1, Type: "standard", Status: seats.StatusAvailable},
					{ID: "s2", SessionID: "1", Row: "A", Number: 2, Type: "standard", Status: seats.StatusAvailable},
				},
			},
			session: &catalog.Session{ID: "1", MovieID: "7", Date: "2026-09-01", Time: "20:00", Price: 12.50},
		},
		store:      &fakeStoreClient{nextID: "42"},
		repo:       newFakeRepo(),
		dispatcher: &fakeDispatcher{},
		producer:   &fakeProducer{},
		kv:         kvstore.NewMemory(),
	}

	cfg := &config.Config{
		Booking: config.BookingConfig{
			PremiumMultiplier:  1.5,
			MaxSeatsPerBooking: 10,
			MaxSessionPrice:    1000,
			SelectionTTL:       30 * time.Minute,
			IdempotencyTTL:     24 * time.Hour,
		},
	}

	fx.service = NewService(
		fx.seats,
		&fakeBookingCatalog{movie: &catalog.Movie{ID: "7", Title: "Inception"}},
		fx.store,
		fx.repo,
		fx.dispatcher,
		fx.producer,
		fx.kv,
		cfg,
		logger.New(),
	)
	return fx
}

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		AttemptID:     "attempt-1",
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	fx := newBookingFixture()

	result, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)

	assert.Equal(t, "42", result.Booking.ID)
	assert.Equal(t, "A1,A2", result.Booking.Seats)
	assert.Equal(t, 25.00, result.Booking.TotalPrice)
	assert.Equal(t, StatusConfirmed, result.Booking.Status)
	assert.False(t, result.Replayed)

	// Idempotency key travels to the store
	assert.Equal(t, "idem-1", fx.store.lastIdemKey)

	// The attempt is closed only after the store accepted the booking
	assert.Equal(t, []string{"attempt-1"}, fx.seats.closed)

	// Local mirror captured the schedule for reminders
	record, err := fx.repo.GetByExternalID(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Inception", record.MovieTitle)
	assert.Equal(t, "2026-09-01", record.SessionDate)
	assert.Equal(t, "20:00", record.SessionTime)

	// Fan-out reached every consumer
	require.Len(t, fx.dispatcher.confirmations, 1)
	assert.Equal(t, "Inception", fx.dispatcher.confirmations[0].MovieTitle)
	require.Len(t, fx.dispatcher.audits, 1)
	require.Len(t, fx.producer.events, 1)
	assert.Equal(t, notifications.EventBookingConfirmed, fx.producer.events[0].Type)
}

func TestCheckout_StoreFailureLeavesAttemptIntact(t *testing.T) {
	fx := newBookingFixture()
	fx.store.createErr = errors.New("store unavailable")

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.Error(t, err)

	// Attempt and selection survive for a retry
	assert.Empty(t, fx.seats.closed)
	assert.Equal(t, []string{"s1", "s2"}, fx.seats.attempt.Selection.SeatIDs)

	// Nothing was mirrored or announced
	assert.Empty(t, fx.repo.records)
	assert.Empty(t, fx.dispatcher.confirmations)
	assert.Empty(t, fx.producer.events)
}

func TestCheckout_InvalidCustomerRejectedBeforeSubmission(t *testing.T) {
	fx := newBookingFixture()

	req := checkoutRequest()
	req.CustomerEmail = "not-an-email"

	_, err := fx.service.Checkout(context.Background(), "1", req)
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "customerEmail")
	assert.Empty(t, fx.store.created)

	// Customer validation fails fast, before the attempt is resolved
	assert.Zero(t, fx.seats.resolves)
}

func TestCheckout_EmptySelectionRejected(t *testing.T) {
	fx := newBookingFixture()
	fx.seats.attempt.Selection.SeatIDs = nil

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.Error(t, err)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs, "seats")
	assert.Empty(t, fx.store.created)
}

func TestCheckout_UnknownAttempt(t *testing.T) {
	fx := newBookingFixture()
	fx.seats.resolveErr = seats.ErrSelectionNotFound

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	assert.ErrorIs(t, err, seats.ErrSelectionNotFound)
}

func TestCheckout_ReplaySkipsResubmission(t *testing.T) {
	fx := newBookingFixture()

	first, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)
	require.Len(t, fx.store.created, 1)

	second, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	// No second submission reached the store
	assert.Len(t, fx.store.created, 1)
}

func TestCheckout_ReplaySurvivesCacheExpiry(t *testing.T) {
	fx := newBookingFixture()
	ctx := context.Background()

	first, err := fx.service.Checkout(ctx, "1", checkoutRequest())
	require.NoError(t, err)
	require.Len(t, fx.store.created, 1)

	// Expired replay key: the local mirror still answers by attempt id
	require.NoError(t, fx.kv.Delete(ctx, replayKey("attempt-1")))

	second, err := fx.service.Checkout(ctx, "1", checkoutRequest())
	require.NoError(t, err)

	assert.True(t, second.Replayed)
	assert.Equal(t, first.Booking.ID, second.Booking.ID)
	assert.Len(t, fx.store.created, 1)
}

func TestCheckout_InvalidSessionPriceRejected(t *testing.T) {
	fx := newBookingFixture()
	fx.seats.session.Price = 0

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.Error(t, err)
	assert.Empty(t, fx.store.created)
}

func TestGetUserBookings_FiltersByUser(t *testing.T) {
	fx := newBookingFixture()
	fx.store.bookings = []Booking{
		{ID: "1", UserID: "1"},
		{ID: "2", UserID: "2"},
		{ID: "3", UserID: "1"},
	}

	mine, err := fx.service.GetUserBookings(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, booking := range mine {
		assert.Equal(t, "1", booking.UserID)
	}
}

func TestGetBooking_OwnershipEnforced(t *testing.T) {
	fx := newBookingFixture()
	fx.store.bookings = []Booking{{ID: "42", UserID: "2"}}

	_, err := fx.service.GetBooking(context.Background(), "1", "42")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestCancelBooking(t *testing.T) {
	fx := newBookingFixture()

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)

	require.NoError(t, fx.service.CancelBooking(context.Background(), "1", "42"))

	record, err := fx.repo.GetByExternalID(context.Background(), "42")
	require.NoError(t, err)
	assert.True(t, record.IsCancelled())
	assert.NotNil(t, record.CancelledAt)

	require.Len(t, fx.dispatcher.cancellations, 1)
	assert.Equal(t, "42", fx.dispatcher.cancellations[0].BookingID)

	// One confirmed event from checkout plus one cancelled event
	require.Len(t, fx.producer.events, 2)
	assert.Equal(t, notifications.EventBookingCancelled, fx.producer.events[1].Type)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	fx := newBookingFixture()

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)
	require.NoError(t, fx.service.CancelBooking(context.Background(), "1", "42"))

	err = fx.service.CancelBooking(context.Background(), "1", "42")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestCancelBooking_OwnershipEnforced(t *testing.T) {
	fx := newBookingFixture()

	_, err := fx.service.Checkout(context.Background(), "1", checkoutRequest())
	require.NoError(t, err)

	err = fx.service.CancelBooking(context.Background(), "9", "42")
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestReminderTargets_WindowFiltering(t *testing.T) {
	fx := newBookingFixture()
	now := time.Now().UTC()

	inWindow := now.Add(time.Hour)
	outOfWindow := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	fx.repo.records["a"] = &BookingRecord{
		ExternalID: "a", UserID: "1", Status: StatusConfirmed,
		CustomerEmail: "a@example.com", MovieTitle: "Inception",
		SessionDate: inWindow.Format("2006-01-02"), SessionTime: inWindow.Format("15:04"),
	}
	fx.repo.records["b"] = &BookingRecord{
		ExternalID: "b", UserID: "1", Status: StatusConfirmed,
		SessionDate: outOfWindow.Format("2006-01-02"), SessionTime: outOfWindow.Format("15:04"),
	}
	fx.repo.records["c"] = &BookingRecord{
		ExternalID: "c", UserID: "1", Status: StatusConfirmed,
		SessionDate: past.Format("2006-01-02"), SessionTime: past.Format("15:04"),
	}
	fx.repo.records["d"] = &BookingRecord{
		ExternalID: "d", UserID: "1", Status: StatusCancelled,
		SessionDate: inWindow.Format("2006-01-02"), SessionTime: inWindow.Format("15:04"),
	}

	targets, err := fx.service.ReminderTargets(context.Background(), 2*time.Hour)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "a", targets[0].BookingID)
	assert.Equal(t, "a@example.com", targets[0].UserEmail)
}
