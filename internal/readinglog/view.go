// Package readinglog holds the state behind the reading-log page: the list
// of loaded books and the draft being typed into the form.
package readinglog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"booklog/internal/book"
)

var (
	// ErrLoadFailed wraps data-client failures while loading the list.
	ErrLoadFailed = errors.New("load books failed")
	// ErrInsertFailed wraps data-client failures while storing the draft.
	ErrInsertFailed = errors.New("insert book failed")
	// ErrClosed is returned for operations on a view that has been torn down.
	ErrClosed = errors.New("view closed")
)

// SubmitOutcome says what a Submit did to the view state.
type SubmitOutcome int

const (
	// SubmitFailed leaves books and draft untouched.
	SubmitFailed SubmitOutcome = iota
	// SubmitAppended means the stored row was echoed and appended to books.
	SubmitAppended
	// SubmitStored means the row was stored but not echoed, so books did not
	// change until the next load.
	SubmitStored
)

func (o SubmitOutcome) String() string {
	switch o {
	case SubmitAppended:
		return "appended"
	case SubmitStored:
		return "stored"
	default:
		return "failed"
	}
}

// SubmitResult reports the outcome of Submit. Book is set for SubmitAppended.
type SubmitResult struct {
	Outcome SubmitOutcome
	Book    *book.Book
}

// View is the controller of one mounted page. It is safe for concurrent use;
// network calls run without holding the state lock.
type View struct {
	client book.Client
	logger *slog.Logger
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	books       []book.Book
	draft       book.Draft
	initialized bool
}

// Option customises a View.
type Option func(*View)

// WithClock replaces time.Now, which decides the date the form resets to.
func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

// WithLogger sets the logger failures are written to.
func WithLogger(l *slog.Logger) Option {
	return func(v *View) { v.logger = l }
}

// NewView mounts a view with an empty list and a blank draft.
func NewView(client book.Client, opts ...Option) *View {
	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		client: client,
		logger: slog.Default(),
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
		books:  []book.Book{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Initialize loads the list once. Later calls are no-ops, even after a
// failure; a new view is needed to load again.
func (v *View) Initialize(ctx context.Context) error {
	v.mu.Lock()
	if v.initialized {
		v.mu.Unlock()
		return nil
	}
	v.initialized = true
	v.mu.Unlock()

	ctx, done := v.bind(ctx)
	defer done()

	books, err := v.client.List(ctx)
	if err != nil {
		v.logger.ErrorContext(ctx, "error fetching books", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if books == nil {
		books = []book.Book{}
	}

	v.mu.Lock()
	v.books = books
	v.mu.Unlock()
	return nil
}

// EditField changes one field of the draft. Values are not validated.
func (v *View) EditField(name, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.draft.Set(name, value); err != nil {
		return fmt.Errorf("%w: %q", err, name)
	}
	return nil
}

// Submit stores the draft as it is at call time. On success the returned row
// (if any) is appended and the draft is reset to blanks dated today; on
// failure nothing changes so the input can be resubmitted.
func (v *View) Submit(ctx context.Context) (SubmitResult, error) {
	v.mu.Lock()
	draft := v.draft
	v.mu.Unlock()

	ctx, done := v.bind(ctx)
	defer done()

	stored, err := v.client.Insert(ctx, draft)
	if err != nil {
		v.logger.ErrorContext(ctx, "error adding book", slog.Any("error", err))
		return SubmitResult{Outcome: SubmitFailed}, fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	res := SubmitResult{Outcome: SubmitStored}
	if stored != nil {
		v.books = append(v.books, *stored)
		b := *stored
		res = SubmitResult{Outcome: SubmitAppended, Book: &b}
	}
	v.draft = book.NewDraft(v.now())
	return res, nil
}

// Books returns a copy of the loaded list.
func (v *View) Books() []book.Book {
	v.mu.Lock()
	defer v.mu.Unlock()
	return slices.Clone(v.books)
}

// Draft returns the current form values.
func (v *View) Draft() book.Draft {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.draft
}

// Close tears the view down and cancels calls still in flight.
func (v *View) Close() {
	v.cancel()
}

// bind derives a context that ends when either ctx or the view ends.
func (v *View) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(ctx)
	stop := context.AfterFunc(v.ctx, func() { cancel(ErrClosed) })
	return ctx, func() {
		stop()
		cancel(nil)
	}
}
