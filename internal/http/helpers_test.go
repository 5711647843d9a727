package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booklog/internal/book"
	"booklog/internal/readinglog"
)

const testCookie = "booklog_session"

var testSecret = []byte("0123456789abcdef0123456789abcdef")

var discard = slog.New(slog.DiscardHandler)

func fixedNow() time.Time {
	return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T, client book.Client) *http.ServeMux {
	t.Helper()
	return newTestRouterWithSecret(t, client, testSecret)
}

func newTestRouterWithSecret(t *testing.T, client book.Client, secret []byte) *http.ServeMux {
	t.Helper()
	sessions := readinglog.NewSessions(time.Minute, func() *readinglog.View {
		return readinglog.NewView(client, readinglog.WithClock(fixedNow), readinglog.WithLogger(discard))
	})
	t.Cleanup(sessions.Close)

	return NewRouter(RouterDeps{
		Service:  book.NewService(client),
		Sessions: sessions,
		Cookie:   CookieConfig{Name: testCookie, TTL: time.Minute, Secret: secret},
		Logger:   discard,
	})
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", testCookie)
	return nil
}
