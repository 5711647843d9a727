package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"booklog/internal/book"
)

// SampleDraft is a fully filled form.
var SampleDraft = book.Draft{
	Title:            "Foo",
	AuthorTranslator: "Bar",
	Publisher:        "Baz",
	PublishedDate:    "2024-01-01",
	ReadDate:         "2024-01-02",
	Summary:          "S",
	Thoughts:         "T",
	Research:         "R",
	Notes:            "N",
}

// SampleBook is SampleDraft after it was stored.
var SampleBook = book.Book{ID: 1, Draft: SampleDraft}

// FormValues encodes a draft the way the page form posts it.
func FormValues(d book.Draft) url.Values {
	v := url.Values{}
	for _, f := range book.Fields {
		v.Set(f, d.Get(f))
	}
	return v
}

// NewFormRequest creates a urlencoded POST request for testing.
func NewFormRequest(path string, form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// NewRequest creates a new HTTP request for testing, JSON-encoding body.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse decodes a JSON response recorded by httptest.
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
