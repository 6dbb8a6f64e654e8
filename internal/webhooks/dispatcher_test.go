package webhooks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

func confirmationPayload() *BookingConfirmationPayload {
	return &BookingConfirmationPayload{
		BookingID:     "42",
		UserID:        "1",
		CustomerName:  "John Doe",
		CustomerEmail: "john@example.com",
		MovieTitle:    "Inception",
		SessionDate:   "2026-09-01",
		SessionTime:   "20:00",
		Seats:         "A1,A2",
		TotalPrice:    25.00,
		QRCode:        "BOOKING-1756400000000",
		BookingDate:   "2026-08-28T12:00:00Z",
		Status:        "confirmed",
	}
}

func TestDispatcher_SendBookingConfirmation(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	d := NewDispatcher(config.WebhookConfig{
		BookingConfirmationURL: server.URL,
		Timeout:                5 * time.Second,
	}, logger.New())

	d.SendBookingConfirmation(context.Background(), confirmationPayload())

	require.NotNil(t, received)
	assert.Equal(t, "42", received["bookingId"])
	assert.Equal(t, "A1,A2", received["seats"])
	assert.Equal(t, 25.00, received["totalPrice"])
	assert.Equal(t, "confirmed", received["status"])
}

func TestDispatcher_FailureIsAbsorbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	d := NewDispatcher(config.WebhookConfig{
		BookingConfirmationURL: server.URL,
		Timeout:                5 * time.Second,
	}, logger.New())

	// Must not panic or propagate anything
	d.SendBookingConfirmation(context.Background(), confirmationPayload())
}

func TestDispatcher_UnreachableEndpointIsAbsorbed(t *testing.T) {
	d := NewDispatcher(config.WebhookConfig{
		CancellationURL: "http://127.0.0.1:1/webhook",
		Timeout:         100 * time.Millisecond,
	}, logger.New())

	d.SendCancellation(context.Background(), &CancellationPayload{BookingID: "42"})
}

func TestDispatcher_UnsetURLSkipsDelivery(t *testing.T) {
	d := NewDispatcher(config.WebhookConfig{Timeout: time.Second}, logger.New())

	// No URL configured for any endpoint; all sends are no-ops.
	d.SendSessionReminder(context.Background(), &SessionReminderPayload{
		UserEmail:    "john@example.com",
		ReminderType: ReminderTypeSession,
	})
}

func TestDispatcher_SessionReminderPayload(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	d := NewDispatcher(config.WebhookConfig{
		SessionReminderURL: server.URL,
		Timeout:            5 * time.Second,
	}, logger.New())

	d.SendSessionReminder(context.Background(), &SessionReminderPayload{
		UserEmail:    "john@example.com",
		MovieTitle:   "Inception",
		SessionDate:  "2026-09-01",
		SessionTime:  "20:00",
		ReminderType: ReminderTypeSession,
	})

	assert.Equal(t, "session_reminder", received["reminderType"])
	assert.Equal(t, "john@example.com", received["userEmail"])
}

func TestGroup_RunsConcurrentlyAndWaits(t *testing.T) {
	var delivered int32
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&delivered, 1)
	}))
	defer slow.Close()

	d := NewDispatcher(config.WebhookConfig{
		BookingConfirmationURL: slow.URL,
		SheetsLogURL:           slow.URL,
		Timeout:                5 * time.Second,
	}, logger.New())

	start := time.Now()
	var g Group
	g.Go(func() { d.SendBookingConfirmation(context.Background(), confirmationPayload()) })
	g.Go(func() { d.SendAuditLog(context.Background(), &AuditLogPayload{Event: "booking_confirmed"}) })
	g.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&delivered))
	// Two slow deliveries overlap rather than run back to back.
	assert.Less(t, time.Since(start), 95*time.Millisecond)
}
