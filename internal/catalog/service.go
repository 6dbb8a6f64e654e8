package catalog

import (
	"context"
	"fmt"

	"cinebook/pkg/logger"
)

// Service exposes the movie/session directory to the rest of the system.
type Service interface {
	GetMovies(ctx context.Context) ([]Movie, error)
	GetMovieByID(ctx context.Context, id string) (*Movie, error)
	GetSessions(ctx context.Context) ([]Session, error)
	GetSessionByID(ctx context.Context, id string) (*Session, error)
	GetSessionsByMovieID(ctx context.Context, movieID string) ([]Session, error)
}

type service struct {
	client Client
	log    *logger.Logger
}

func NewService(client Client, log *logger.Logger) Service {
	return &service{client: client, log: log}
}

func (s *service) GetMovies(ctx context.Context) ([]Movie, error) {
	return s.client.GetMovies(ctx)
}

func (s *service) GetMovieByID(ctx context.Context, id string) (*Movie, error) {
	if id == "" {
		return nil, fmt.Errorf("movie id is required")
	}
	return s.client.GetMovieByID(ctx, id)
}

func (s *service) GetSessions(ctx context.Context) ([]Session, error) {
	sessions, err := s.client.GetSessions(ctx)
	if err != nil {
		return nil, err
	}
	return s.dropInvalid(ctx, sessions), nil
}

func (s *service) GetSessionByID(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	session, err := s.client.GetSessionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Price <= 0 {
		return nil, fmt.Errorf("session %s has invalid price %.2f", id, session.Price)
	}
	return session, nil
}

// GetSessionsByMovieID filters the full session list client-side; the
// directory has no query parameters.
func (s *service) GetSessionsByMovieID(ctx context.Context, movieID string) ([]Session, error) {
	sessions, err := s.GetSessions(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		if session.MovieID == movieID {
			filtered = append(filtered, session)
		}
	}
	return filtered, nil
}

// dropInvalid removes sessions violating the price > 0 invariant rather than
// letting them reach a booking attempt.
func (s *service) dropInvalid(ctx context.Context, sessions []Session) []Session {
	valid := sessions[:0]
	for _, session := range sessions {
		if session.Price <= 0 {
			s.log.InfoWithContext(ctx, "dropping session with invalid price", map[string]interface{}{
				"session_id": session.ID,
				"price":      session.Price,
			})
			continue
		}
		valid = append(valid, session)
	}
	return valid
}
