package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IdempotencyHeader carries the attempt's idempotency key so the booking
// store can deduplicate retried submissions.
const IdempotencyHeader = "X-Idempotency-Key"

// StoreClient talks to the external booking store.
type StoreClient interface {
	CreateBooking(ctx context.Context, booking *Booking, idempotencyKey string) (*Booking, error)
	GetBookings(ctx context.Context) ([]Booking, error)
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
}

type httpStoreClient struct {
	baseURL string
	client  *http.Client
}

// NewStoreClient creates a booking store client with a bounded request
// timeout.
func NewStoreClient(baseURL string, timeout time.Duration) StoreClient {
	return &httpStoreClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpStoreClient) CreateBooking(ctx context.Context, booking *Booking, idempotencyKey string) (*Booking, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit booking: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("booking store returned status %d", resp.StatusCode)
	}

	var created Booking
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode booking store response: %w", err)
	}
	return &created, nil
}

func (c *httpStoreClient) GetBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.getJSON(ctx, "/bookings", &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

func (c *httpStoreClient) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	var booking Booking
	if err := c.getJSON(ctx, "/bookings/"+id, &booking); err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (c *httpStoreClient) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("booking store returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
