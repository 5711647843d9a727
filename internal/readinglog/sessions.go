package readinglog

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"booklog/internal/platform/ident"
)

// Sessions maps browser session IDs to their mounted views. Idle views
// expire after the TTL and are closed on eviction.
type Sessions struct {
	cache   *cache.Cache
	newView func() *View

	mu sync.Mutex
}

// NewSessions creates a store whose views are built by newView.
func NewSessions(ttl time.Duration, newView func() *View) *Sessions {
	c := cache.New(ttl, ttl*2)
	c.OnEvicted(func(_ string, v interface{}) {
		if view, ok := v.(*View); ok {
			view.Close()
		}
	})
	return &Sessions{cache: c, newView: newView}
}

// NewSessionID returns a fresh random session identifier.
func NewSessionID() string {
	return ident.New()
}

// Mount replaces whatever view the session had with a new one, the way a
// page reload starts from scratch. The old view is closed.
func (s *Sessions) Mount(id string) *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.DeleteExpired()

	if old, ok := s.cache.Get(id); ok {
		old.(*View).Close()
	}
	v := s.newView()
	s.cache.SetDefault(id, v)
	return v
}

// Get returns the session's view and extends its lifetime. When the
// session has no view (new or expired) one is mounted and fresh is true.
// Expired views are closed before they are replaced.
func (s *Sessions) Get(id string) (v *View, fresh bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.DeleteExpired()

	if cached, ok := s.cache.Get(id); ok {
		v = cached.(*View)
		s.cache.SetDefault(id, v)
		return v, false
	}
	v = s.newView()
	s.cache.SetDefault(id, v)
	return v, true
}

// Len reports how many sessions are live.
func (s *Sessions) Len() int {
	return s.cache.ItemCount()
}

// Close evicts every session, closing their views. Expired entries the
// janitor has not reached yet are closed too.
func (s *Sessions) Close() {
	s.cache.DeleteExpired()
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}
