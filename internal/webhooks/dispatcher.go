package webhooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// Dispatcher posts notification payloads to the configured endpoints. Every
// call is fire-and-forget at the business level: a failed or slow endpoint is
// logged and otherwise ignored, and never affects the booking that triggered
// it.
type Dispatcher interface {
	SendBookingConfirmation(ctx context.Context, payload *BookingConfirmationPayload)
	SendSessionReminder(ctx context.Context, payload *SessionReminderPayload)
	SendAuditLog(ctx context.Context, payload *AuditLogPayload)
	SendCancellation(ctx context.Context, payload *CancellationPayload)
}

type dispatcher struct {
	cfg    config.WebhookConfig
	client *http.Client
	log    *logger.Logger
}

func NewDispatcher(cfg config.WebhookConfig, log *logger.Logger) Dispatcher {
	return &dispatcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		log:    log,
	}
}

func (d *dispatcher) SendBookingConfirmation(ctx context.Context, payload *BookingConfirmationPayload) {
	d.post(ctx, "booking_confirmation", d.cfg.BookingConfirmationURL, payload)
}

func (d *dispatcher) SendSessionReminder(ctx context.Context, payload *SessionReminderPayload) {
	d.post(ctx, "session_reminder", d.cfg.SessionReminderURL, payload)
}

func (d *dispatcher) SendAuditLog(ctx context.Context, payload *AuditLogPayload) {
	d.post(ctx, "audit_log", d.cfg.SheetsLogURL, payload)
}

func (d *dispatcher) SendCancellation(ctx context.Context, payload *CancellationPayload) {
	d.post(ctx, "cancellation", d.cfg.CancellationURL, payload)
}

// post delivers one payload. An unset URL means the endpoint is disabled.
// Delivery failures are absorbed after logging.
func (d *dispatcher) post(ctx context.Context, name, url string, payload interface{}) {
	if url == "" {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.log.LogCollaboratorFailure(ctx, "webhook", name, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		d.log.LogCollaboratorFailure(ctx, "webhook", name, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		d.log.LogCollaboratorFailure(ctx, "webhook", name, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		d.log.LogCollaboratorFailure(ctx, "webhook", name,
			fmt.Errorf("endpoint returned status %d", resp.StatusCode))
		return
	}

	d.log.InfoWithContext(ctx, "webhook delivered", map[string]interface{}{
		"webhook": name,
		"status":  resp.StatusCode,
	})
}

// Group runs independent dispatches concurrently and waits for all of them,
// so the caller blocks for at most one webhook timeout rather than the sum.
type Group struct {
	wg sync.WaitGroup
}

func (g *Group) Go(fn func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		fn()
	}()
}

func (g *Group) Wait() {
	g.wg.Wait()
}
