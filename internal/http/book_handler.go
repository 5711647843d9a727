package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"booklog/internal/book"
	"booklog/internal/httpx"
)

// BookHandler exposes the reading log as JSON under /v1/books.
type BookHandler struct {
	service *book.Service
	logger  *slog.Logger
}

func NewBookHandler(service *book.Service, logger *slog.Logger) *BookHandler {
	return &BookHandler{service: service, logger: logger}
}

type createBookRequest struct {
	Title            string `json:"title"`
	AuthorTranslator string `json:"author_translator"`
	Publisher        string `json:"publisher"`
	PublishedDate    string `json:"published_date" validate:"calendar_date"`
	ReadDate         string `json:"read_date" validate:"calendar_date"`
	Summary          string `json:"summary"`
	Thoughts         string `json:"thoughts"`
	Research         string `json:"research"`
	Notes            string `json:"notes"`
}

func (req createBookRequest) draft() book.Draft {
	return book.Draft{
		Title:            req.Title,
		AuthorTranslator: req.AuthorTranslator,
		Publisher:        req.Publisher,
		PublishedDate:    req.PublishedDate,
		ReadDate:         req.ReadDate,
		Summary:          req.Summary,
		Thoughts:         req.Thoughts,
		Research:         req.Research,
		Notes:            req.Notes,
	}
}

// @Summary List books
// @Description Get every recorded book in backend order
// @Tags books
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/books [get]
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list books", slog.Any("error", err))
		httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not load books", nil)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, books, map[string]any{"total": len(books)})
}

// @Summary Add a book
// @Description Store one reading-log entry. data is omitted when the backend does not return the row.
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /v1/books [post]
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			httpx.JSONErrorWithRequest(r, w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "Request body too large", nil)
			return
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", []httpx.ErrorDetail{
			{Field: "body", Message: err.Error()},
		})
		return
	}

	if details := ValidateStruct(req); len(details) > 0 {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", details)
		return
	}

	stored, err := h.service.Add(r.Context(), req.draft())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "add book", slog.Any("error", err))
		httpx.JSONErrorWithRequest(r, w, http.StatusBadGateway, "UPSTREAM_ERROR", "Could not store book", nil)
		return
	}
	if stored == nil {
		httpx.JSONSuccessCreatedWithRequest(r, w, nil)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, stored)
}
