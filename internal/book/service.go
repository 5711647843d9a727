package book

import (
	"context"
	"errors"
)

// ErrPingUnsupported is returned by Service.Ping when the client cannot be
// probed.
var ErrPingUnsupported = errors.New("backend does not support ping")

// Service provides book-related operations on top of a Client.
type Service struct {
	client Client
}

// NewService creates a new book service.
func NewService(client Client) *Service {
	return &Service{client: client}
}

// List returns every stored book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Add stores a draft. The result is nil when the backend does not echo the row.
func (s *Service) Add(ctx context.Context, d Draft) (*Book, error) {
	return s.client.Insert(ctx, d)
}

// Ping checks that the backend is reachable.
func (s *Service) Ping(ctx context.Context) error {
	p, ok := s.client.(Pinger)
	if !ok {
		return ErrPingUnsupported
	}
	return p.Ping(ctx)
}
