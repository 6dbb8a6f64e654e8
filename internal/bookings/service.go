package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinebook/internal/catalog"
	"cinebook/internal/notifications"
	"cinebook/internal/seats"
	"cinebook/internal/shared/config"
	"cinebook/internal/webhooks"
	"cinebook/pkg/kvstore"
	"cinebook/pkg/logger"
)

var (
	// ErrNotOwner signals access to another user's booking.
	ErrNotOwner = errors.New("booking does not belong to user")
	// ErrAlreadyCancelled signals a repeated cancellation.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// Service owns the booking submission flow and the booking history reads.
type Service interface {
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*Booking, error)
	GetQRCode(ctx context.Context, userID, bookingID string, size int) ([]byte, error)
	CancelBooking(ctx context.Context, userID, bookingID string) error

	// ReminderTargets feeds the session reminder scheduler.
	ReminderTargets(ctx context.Context, window time.Duration) ([]webhooks.ReminderTarget, error)
}

type service struct {
	seats      seats.Service
	catalog    catalog.Service
	store      StoreClient
	repo       Repository
	dispatcher webhooks.Dispatcher
	producer   notifications.EventProducer
	kv         kvstore.Store
	cfg        *config.Config
	log        *logger.Logger
}

func NewService(
	seatService seats.Service,
	catalogService catalog.Service,
	store StoreClient,
	repo Repository,
	dispatcher webhooks.Dispatcher,
	producer notifications.EventProducer,
	kv kvstore.Store,
	cfg *config.Config,
	log *logger.Logger,
) Service {
	return &service{
		seats:      seatService,
		catalog:    catalogService,
		store:      store,
		repo:       repo,
		dispatcher: dispatcher,
		producer:   producer,
		kv:         kv,
		cfg:        cfg,
		log:        log,
	}
}

// Checkout submits a booking attempt. The flow is atomic from the user's
// point of view: nothing about the attempt changes until the booking store
// has accepted the submission, so a failed checkout leaves the selection
// intact for a retry. Replays of an already-submitted attempt return the
// stored booking instead of creating a duplicate.
func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*CheckoutResponse, error) {
	if replayed, err := s.replayedBooking(ctx, req.AttemptID); err == nil && replayed != nil {
		return &CheckoutResponse{Booking: *replayed, Replayed: true}, nil
	}

	// Customer details are validated before any collaborator read.
	customer := CustomerDetails{Name: req.CustomerName, Email: req.CustomerEmail}
	if errs := ValidateCustomer(customer); errs != nil {
		return nil, errs
	}

	attempt, inventory, session, err := s.seats.ResolveAttempt(ctx, req.AttemptID)
	if err != nil {
		return nil, err
	}

	if errs := ValidateSeatCount(attempt.Selection.Count(), s.cfg.Booking.MaxSeatsPerBooking); errs != nil {
		return nil, errs
	}
	if !IsValidPrice(session.Price, s.cfg.Booking.MaxSessionPrice) {
		return nil, fmt.Errorf("session %s has an invalid price %.2f", session.ID, session.Price)
	}

	movie, err := s.catalog.GetMovieByID(ctx, session.MovieID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve movie: %w", err)
	}

	assembly, err := Assemble(attempt, inventory, session, movie, customer, userID,
		s.cfg.Booking.PremiumMultiplier, time.Now())
	if err != nil {
		return nil, err
	}
	if assembly.Dropped > 0 {
		s.log.InfoWithContext(ctx, "dropped unresolvable seats at checkout", map[string]interface{}{
			"attempt_id": attempt.ID,
			"dropped":    assembly.Dropped,
		})
	}

	created, err := s.store.CreateBooking(ctx, &assembly.Booking, attempt.IdempotencyKey)
	if err != nil {
		// The attempt and its selection survive so the user can retry.
		return nil, fmt.Errorf("booking submission failed: %w", err)
	}

	s.rememberReplay(ctx, attempt.ID, created.ID)
	s.mirrorBooking(ctx, attempt.ID, created, movie, session)

	if err := s.seats.CloseAttempt(ctx, attempt.ID); err != nil {
		s.log.LogCollaboratorFailure(ctx, "kvstore", "close_attempt", err)
	}

	s.fanOutConfirmation(ctx, created, movie, session)
	s.log.LogBookingConfirmed(ctx, created.ID, session.ID, userID)

	return &CheckoutResponse{Booking: *created, DroppedSeats: assembly.Dropped}, nil
}

// GetUserBookings returns the user's booking history. The store has no query
// parameters, so filtering happens here.
func (s *service) GetUserBookings(ctx context.Context, userID string) ([]Booking, error) {
	all, err := s.store.GetBookings(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]Booking, 0, len(all))
	for _, booking := range all {
		if booking.UserID == userID {
			mine = append(mine, booking)
		}
	}
	return mine, nil
}

func (s *service) GetBooking(ctx context.Context, userID, bookingID string) (*Booking, error) {
	booking, err := s.store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotOwner
	}
	return booking, nil
}

func (s *service) GetQRCode(ctx context.Context, userID, bookingID string, size int) ([]byte, error) {
	booking, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	return RenderQRCode(booking.QRCode, size)
}

// CancelBooking cancels a confirmed booking. The booking store has no seat
// mutation endpoint, so no seat inventory is written back; cancellation is a
// notification plus local bookkeeping.
func (s *service) CancelBooking(ctx context.Context, userID, bookingID string) error {
	record, err := s.repo.GetByExternalID(ctx, bookingID)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return ErrNotOwner
	}
	if record.IsCancelled() {
		return ErrAlreadyCancelled
	}

	now := time.Now().UTC()

	var group webhooks.Group
	group.Go(func() {
		s.dispatcher.SendCancellation(ctx, &webhooks.CancellationPayload{
			BookingID:     record.ExternalID,
			UserID:        record.UserID,
			CustomerEmail: record.CustomerEmail,
			MovieTitle:    record.MovieTitle,
			Seats:         record.Seats,
			CancelledAt:   now.Format(time.RFC3339),
		})
	})
	group.Go(func() {
		s.publishEvent(ctx, notifications.EventBookingCancelled, record.ExternalID, record.UserID,
			record.SessionID, record.MovieTitle, record.Seats, record.TotalPrice, now)
	})
	group.Wait()

	if err := s.repo.MarkCancelled(ctx, record.ExternalID, now); err != nil {
		return fmt.Errorf("failed to mark booking cancelled: %w", err)
	}

	s.log.LogBookingCancelled(ctx, record.ExternalID, userID)
	return nil
}

// ReminderTargets lists confirmed bookings whose session starts within the
// window from now.
func (s *service) ReminderTargets(ctx context.Context, window time.Duration) ([]webhooks.ReminderTarget, error) {
	records, err := s.repo.ListByStatus(ctx, StatusConfirmed)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	targets := make([]webhooks.ReminderTarget, 0, len(records))
	for _, record := range records {
		start, ok := record.SessionStart()
		if !ok {
			continue
		}
		if start.Before(now) || start.After(now.Add(window)) {
			continue
		}
		targets = append(targets, webhooks.ReminderTarget{
			BookingID:   record.ExternalID,
			UserEmail:   record.CustomerEmail,
			MovieTitle:  record.MovieTitle,
			SessionDate: record.SessionDate,
			SessionTime: record.SessionTime,
		})
	}
	return targets, nil
}

// replayedBooking returns the stored booking for an already-submitted
// attempt, or nil when the attempt has never completed a checkout. The
// kvstore replay key is the fast path; once it has expired, the durable
// local mirror still answers by attempt id.
func (s *service) replayedBooking(ctx context.Context, attemptID string) (*Booking, error) {
	var externalID string
	if err := s.kv.Get(ctx, replayKey(attemptID), &externalID); err != nil {
		record, repoErr := s.repo.GetByAttemptID(ctx, attemptID)
		if repoErr != nil {
			return nil, err
		}
		externalID = record.ExternalID
	}
	return s.store.GetBookingByID(ctx, externalID)
}

func (s *service) rememberReplay(ctx context.Context, attemptID, externalID string) {
	if err := s.kv.Set(ctx, replayKey(attemptID), externalID, s.cfg.Booking.IdempotencyTTL); err != nil {
		s.log.LogCollaboratorFailure(ctx, "kvstore", replayKey(attemptID), err)
	}
}

// mirrorBooking writes the local record. The booking already exists in the
// store, so a mirror failure is logged rather than surfaced.
func (s *service) mirrorBooking(ctx context.Context, attemptID string, booking *Booking, movie *catalog.Movie, session *catalog.Session) {
	bookingDate, err := time.Parse(time.RFC3339, booking.BookingDate)
	if err != nil {
		bookingDate = time.Now().UTC()
	}

	record := &BookingRecord{
		ExternalID:    booking.ID,
		AttemptID:     attemptID,
		UserID:        booking.UserID,
		SessionID:     booking.SessionID,
		MovieID:       booking.MovieID,
		MovieTitle:    movie.Title,
		SessionDate:   session.Date,
		SessionTime:   session.Time,
		Seats:         booking.Seats,
		TotalPrice:    booking.TotalPrice,
		Status:        booking.Status,
		QRCode:        booking.QRCode,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		BookingDate:   bookingDate,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.log.LogCollaboratorFailure(ctx, "database", "booking_mirror", err)
	}
}

// fanOutConfirmation notifies downstream systems concurrently and waits for
// all of them. Failures are absorbed inside the dispatcher and producer; the
// booking is already confirmed by this point.
func (s *service) fanOutConfirmation(ctx context.Context, booking *Booking, movie *catalog.Movie, session *catalog.Session) {
	var group webhooks.Group

	group.Go(func() {
		s.dispatcher.SendBookingConfirmation(ctx, &webhooks.BookingConfirmationPayload{
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			MovieTitle:    movie.Title,
			SessionDate:   session.Date,
			SessionTime:   session.Time,
			Seats:         booking.Seats,
			TotalPrice:    booking.TotalPrice,
			QRCode:        booking.QRCode,
			BookingDate:   booking.BookingDate,
			Status:        booking.Status,
		})
	})

	group.Go(func() {
		s.dispatcher.SendAuditLog(ctx, &webhooks.AuditLogPayload{
			Event:         "booking_confirmed",
			BookingID:     booking.ID,
			UserID:        booking.UserID,
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			MovieTitle:    movie.Title,
			Seats:         booking.Seats,
			TotalPrice:    booking.TotalPrice,
			BookingDate:   booking.BookingDate,
			Status:        booking.Status,
		})
	})

	group.Go(func() {
		s.publishEvent(ctx, notifications.EventBookingConfirmed, booking.ID, booking.UserID,
			booking.SessionID, movie.Title, booking.Seats, booking.TotalPrice, time.Now().UTC())
	})

	group.Wait()
}

func (s *service) publishEvent(ctx context.Context, eventType, bookingID, userID, sessionID, movieTitle, seatLabels string, total float64, at time.Time) {
	event := &notifications.BookingEvent{
		Type:       eventType,
		BookingID:  bookingID,
		UserID:     userID,
		SessionID:  sessionID,
		MovieTitle: movieTitle,
		Seats:      seatLabels,
		TotalPrice: total,
		OccurredAt: at,
	}
	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.log.LogCollaboratorFailure(ctx, "kafka", eventType, err)
	}
}

func replayKey(attemptID string) string {
	return "checkout:attempt:" + attemptID
}
