package seats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client reads seat inventory from the external store. The store exposes the
// full seat collection only; session scoping happens in the service.
type Client interface {
	GetSeats(ctx context.Context) ([]Seat, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an inventory client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) GetSeats(ctx context.Context) ([]Seat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/seats", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seat store returned status %d", resp.StatusCode)
	}

	var seats []Seat
	if err := json.NewDecoder(resp.Body).Decode(&seats); err != nil {
		return nil, fmt.Errorf("failed to decode seats: %w", err)
	}
	return seats, nil
}
