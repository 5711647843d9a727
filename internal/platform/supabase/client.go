// Package supabase is a small client for the PostgREST table API of a
// Supabase project. It implements book.Client for a single table.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booklog/internal/book"

	"golang.org/x/time/rate"
)

const maxErrorBody = 64 << 10

// Config describes the project and table to talk to.
type Config struct {
	URL       string
	APIKey    string
	Table     string
	ReturnRow bool
	Timeout   time.Duration
	// RPS caps outgoing requests per second. Zero means unlimited.
	RPS float64
	// HTTPClient overrides the default client built from Timeout.
	HTTPClient *http.Client
}

type Client struct {
	httpClient *http.Client
	tableURL   string
	apiKey     string
	returnRow  bool
	limiter    *rate.Limiter
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("supabase: project URL is required")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("supabase: API key is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.URL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("supabase: invalid project URL %q", cfg.URL)
	}
	table := cfg.Table
	if table == "" {
		table = "books"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}

	return &Client{
		httpClient: httpClient,
		tableURL:   base.String() + "/rest/v1/" + url.PathEscape(table),
		apiKey:     cfg.APIKey,
		returnRow:  cfg.ReturnRow,
		limiter:    rate.NewLimiter(limit, 1),
	}, nil
}

// List selects every row of the table. No ordering is requested.
func (c *Client) List(ctx context.Context) ([]book.Book, error) {
	resp, err := c.do(ctx, http.MethodGet, c.tableURL+"?select=*", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("supabase: list books: %w", err)
	}
	defer resp.Body.Close()

	books := []book.Book{}
	if err := json.NewDecoder(resp.Body).Decode(&books); err != nil {
		return nil, fmt.Errorf("supabase: list books: decode: %w", err)
	}
	return books, nil
}

// Insert posts a single-row array. With ReturnRow the backend is asked to
// echo the stored row; an empty answer yields a nil book.
func (c *Client) Insert(ctx context.Context, d book.Draft) (*book.Book, error) {
	body, err := json.Marshal([]book.Draft{d})
	if err != nil {
		return nil, fmt.Errorf("supabase: insert book: encode: %w", err)
	}

	prefer := "return=minimal"
	if c.returnRow {
		prefer = "return=representation"
	}

	resp, err := c.do(ctx, http.MethodPost, c.tableURL, bytes.NewReader(body), http.Header{
		"Content-Type": {"application/json"},
		"Prefer":       {prefer},
	})
	if err != nil {
		return nil, fmt.Errorf("supabase: insert book: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: insert book: read: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var rows []book.Book
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("supabase: insert book: decode: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Ping asks for zero rows to check that the project and table answer.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodHead, c.tableURL+"?select=id&limit=0", nil, nil)
	if err != nil {
		return fmt.Errorf("supabase: ping: %w", err)
	}
	resp.Body.Close()
	return nil
}

// do sends one request and turns non-2xx answers into *APIError. The caller
// closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, u string, body io.Reader, header http.Header) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseAPIError(resp.StatusCode, raw)
	}
	return resp, nil
}
