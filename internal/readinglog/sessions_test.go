package readinglog

import (
	"context"
	"testing"
	"time"

	"booklog/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(t *testing.T, ttl time.Duration) *Sessions {
	t.Helper()
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	s := NewSessions(ttl, func() *View { return NewView(repo) })
	t.Cleanup(s.Close)
	return s
}

func TestSessions_GetMountsOnce(t *testing.T) {
	s := newTestSessions(t, time.Minute)
	id := NewSessionID()

	v1, fresh := s.Get(id)
	assert.True(t, fresh)

	v2, fresh := s.Get(id)
	assert.False(t, fresh)
	assert.Same(t, v1, v2)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_MountReplacesAndClosesOld(t *testing.T) {
	s := newTestSessions(t, time.Minute)
	id := NewSessionID()

	old := s.Mount(id)
	require.NoError(t, old.EditField(book.FieldTitle, "typed"))

	v := s.Mount(id)
	assert.NotSame(t, old, v)
	assert.Error(t, old.ctx.Err(), "old view is closed")
	assert.Equal(t, book.Draft{}, v.Draft())

	got, fresh := s.Get(id)
	assert.False(t, fresh)
	assert.Same(t, v, got)
}

func TestSessions_Expire(t *testing.T) {
	s := newTestSessions(t, 20*time.Millisecond)
	id := NewSessionID()

	v1, _ := s.Get(id)
	time.Sleep(50 * time.Millisecond)

	v2, fresh := s.Get(id)
	assert.True(t, fresh)
	assert.NotSame(t, v1, v2)
	assert.ErrorIs(t, v1.ctx.Err(), context.Canceled, "expired view is closed when replaced")
	assert.NoError(t, v2.ctx.Err())
}

func TestSessions_CloseClosesExpiredViews(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	s := NewSessions(20*time.Millisecond, func() *View { return NewView(repo) })

	expired := s.Mount(NewSessionID())
	time.Sleep(30 * time.Millisecond)

	s.Close()

	assert.ErrorIs(t, expired.ctx.Err(), context.Canceled)
	assert.Equal(t, 0, s.Len())
}

func TestSessions_MountClosesExpiredViewOfOtherSession(t *testing.T) {
	repo, err := book.NewMemoryRepo()
	require.NoError(t, err)
	s := NewSessions(20*time.Millisecond, func() *View { return NewView(repo) })
	t.Cleanup(s.Close)

	stale := s.Mount(NewSessionID())
	time.Sleep(30 * time.Millisecond)

	s.Mount(NewSessionID())

	assert.ErrorIs(t, stale.ctx.Err(), context.Canceled)
	assert.Equal(t, 1, s.Len())
}

func TestSessions_CloseEvictsAll(t *testing.T) {
	s := newTestSessions(t, time.Minute)
	a := s.Mount(NewSessionID())
	b := s.Mount(NewSessionID())

	s.Close()

	assert.Equal(t, 0, s.Len())
	assert.Error(t, a.ctx.Err())
	assert.Error(t, b.ctx.Err())
}

func TestNewSessionID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
}
