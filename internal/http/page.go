package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"booklog/internal/book"
	"booklog/internal/readinglog"
)

const sessionIDKey = "sid"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// StaticHandler serves the page's stylesheet.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

type pageData struct {
	Books []book.Book
	Draft book.Draft
}

// CookieConfig controls the session cookie that ties a browser to its view.
// Secret is the HMAC key the cookie is signed with.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
	Secret []byte
}

// PageHandler serves the reading-log page. Each browser session owns one
// readinglog.View; loading the page mounts a fresh one. The cookie only
// carries the signed session id, views stay server-side.
type PageHandler struct {
	views  *readinglog.Sessions
	store  *sessions.CookieStore
	cookie CookieConfig
	logger *slog.Logger
}

func NewPageHandler(views *readinglog.Sessions, cookie CookieConfig, logger *slog.Logger) *PageHandler {
	secret := cookie.Secret
	if len(secret) == 0 {
		logger.Warn("SESSION_SECRET not set, signing session cookies with a per-process key")
		secret = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(cookie.TTL.Seconds()))

	return &PageHandler{views: views, store: store, cookie: cookie, logger: logger}
}

// Show handles GET /. Load failures are logged by the view and the page
// renders whatever list it has.
func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	view := h.views.Mount(id)
	_ = view.Initialize(r.Context())
	h.render(w, r, view)
}

// Submit handles POST /books: every posted field goes through EditField,
// then the draft is submitted. The page is re-rendered either way.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id, err := h.sessionID(w, r)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	view, fresh := h.views.Get(id)
	if fresh {
		_ = view.Initialize(r.Context())
	}

	for _, field := range book.Fields {
		if _, ok := r.PostForm[field]; !ok {
			continue
		}
		if err := view.EditField(field, r.PostForm.Get(field)); err != nil {
			h.logger.ErrorContext(r.Context(), "edit field", slog.String("field", field), slog.Any("error", err))
		}
	}

	res, err := view.Submit(r.Context())
	if err == nil {
		h.logger.DebugContext(r.Context(), "book submitted", slog.String("outcome", res.Outcome.String()))
	}
	h.render(w, r, view)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, view *readinglog.View) {
	var buf bytes.Buffer
	data := pageData{Books: view.Books(), Draft: view.Draft()}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "render page", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// sessionID returns the caller's session id. Cookies that are missing,
// expired or not signed with our key get a new id and a new cookie.
func (h *PageHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, err := h.store.Get(r, h.cookie.Name)
	if err != nil {
		h.logger.DebugContext(r.Context(), "session cookie rejected", slog.Any("error", err))
	}
	if id, ok := sess.Values[sessionIDKey].(string); ok && id != "" {
		return id, nil
	}

	id := readinglog.NewSessionID()
	sess.Values[sessionIDKey] = id
	if err := sess.Save(r, w); err != nil {
		h.logger.ErrorContext(r.Context(), "save session", slog.Any("error", err))
		return "", err
	}
	return id, nil
}
