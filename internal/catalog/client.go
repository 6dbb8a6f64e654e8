package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external movie/session directory. The directory offers
// plain collection and by-id reads only; any filtering happens on our side.
type Client interface {
	GetMovies(ctx context.Context) ([]Movie, error)
	GetMovieByID(ctx context.Context, id string) (*Movie, error)
	GetSessions(ctx context.Context) ([]Session, error)
	GetSessionByID(ctx context.Context, id string) (*Session, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a directory client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) GetMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	if err := c.getJSON(ctx, "/movies", &movies); err != nil {
		return nil, fmt.Errorf("failed to fetch movies: %w", err)
	}
	return movies, nil
}

func (c *httpClient) GetMovieByID(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := c.getJSON(ctx, "/movies/"+id, &movie); err != nil {
		return nil, fmt.Errorf("failed to fetch movie %s: %w", id, err)
	}
	return &movie, nil
}

func (c *httpClient) GetSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.getJSON(ctx, "/sessions", &sessions); err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

func (c *httpClient) GetSessionByID(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := c.getJSON(ctx, "/sessions/"+id, &session); err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", id, err)
	}
	return &session, nil
}

func (c *httpClient) getJSON(ctx context.Context, path string, dest interface{}) error {
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
		return fmt.Errorf("directory returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
