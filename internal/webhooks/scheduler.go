package webhooks

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"cinebook/internal/shared/config"
	"cinebook/pkg/kvstore"
	"cinebook/pkg/logger"
)

// ReminderTarget is one reminder to deliver: a confirmed booking's contact
// paired with its session details.
type ReminderTarget struct {
	BookingID   string
	UserEmail   string
	MovieTitle  string
	SessionDate string
	SessionTime string
}

// ReminderSource lists confirmed bookings whose session starts within the
// given window. Implemented by the bookings service.
type ReminderSource interface {
	ReminderTargets(ctx context.Context, window time.Duration) ([]ReminderTarget, error)
}

// ReminderScheduler periodically scans for upcoming sessions and fires the
// session reminder webhook once per booking.
type ReminderScheduler struct {
	scheduler  gocron.Scheduler
	source     ReminderSource
	dispatcher Dispatcher
	kv         kvstore.Store
	cfg        config.WebhookConfig
	log        *logger.Logger
}

func NewReminderScheduler(source ReminderSource, dispatcher Dispatcher, kv kvstore.Store, cfg config.WebhookConfig, log *logger.Logger) (*ReminderScheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &ReminderScheduler{
		scheduler:  scheduler,
		source:     source,
		dispatcher: dispatcher,
		kv:         kv,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Start registers the reminder job and begins the scheduler. A disabled
// config makes Start a no-op so wiring never branches.
func (r *ReminderScheduler) Start() error {
	if !r.cfg.ReminderEnabled {
		return nil
	}

	_, err := r.scheduler.NewJob(
		gocron.DurationJob(r.cfg.ReminderInterval),
		gocron.NewTask(r.run),
	)
	if err != nil {
		return fmt.Errorf("failed to register reminder job: %w", err)
	}

	r.scheduler.Start()
	return nil
}

func (r *ReminderScheduler) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *ReminderScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	targets, err := r.source.ReminderTargets(ctx, r.cfg.ReminderWindow)
	if err != nil {
		r.log.LogCollaboratorFailure(ctx, "scheduler", "reminder_targets", err)
		return
	}

	for _, target := range targets {
		if r.alreadySent(ctx, target.BookingID) {
			continue
		}

		r.dispatcher.SendSessionReminder(ctx, &SessionReminderPayload{
			UserEmail:    target.UserEmail,
			MovieTitle:   target.MovieTitle,
			SessionDate:  target.SessionDate,
			SessionTime:  target.SessionTime,
			ReminderType: ReminderTypeSession,
		})
		r.markSent(ctx, target.BookingID)
	}
}

// alreadySent dedupes reminders across ticks. The marker outlives the window
// so a booking gets at most one reminder.
func (r *ReminderScheduler) alreadySent(ctx context.Context, bookingID string) bool {
	exists, err := r.kv.Exists(ctx, reminderKey(bookingID))
	if err != nil {
		return false
	}
	return exists
}

func (r *ReminderScheduler) markSent(ctx context.Context, bookingID string) {
	ttl := 2 * r.cfg.ReminderWindow
	if err := r.kv.Set(ctx, reminderKey(bookingID), true, ttl); err != nil {
		r.log.LogCollaboratorFailure(ctx, "kvstore", reminderKey(bookingID), err)
	}
}

func reminderKey(bookingID string) string {
	return "reminder:sent:" + bookingID
}
