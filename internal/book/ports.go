package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_client.go -package=book

// Client is the contract of the table storage holding the books.
type Client interface {
	// List returns every stored book in backend order.
	List(ctx context.Context) ([]Book, error)
	// Insert stores one draft. The stored book is returned when the backend
	// echoes it back; otherwise the result is nil with a nil error.
	Insert(ctx context.Context, d Draft) (*Book, error)
}

// Pinger is implemented by clients that can check backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
