package book

import (
	"errors"
	"time"
)

// ErrUnknownField is returned when a draft field name is not one of Fields.
var ErrUnknownField = errors.New("unknown book field")

// DateLayout is the text form of the two date fields.
const DateLayout = "2006-01-02"

// Field names, identical to the column names of the books table.
const (
	FieldTitle            = "title"
	FieldAuthorTranslator = "author_translator"
	FieldPublisher        = "publisher"
	FieldPublishedDate    = "published_date"
	FieldReadDate         = "read_date"
	FieldSummary          = "summary"
	FieldThoughts         = "thoughts"
	FieldResearch         = "research"
	FieldNotes            = "notes"
)

// Fields lists every draft field in form order.
var Fields = []string{
	FieldTitle,
	FieldAuthorTranslator,
	FieldPublisher,
	FieldPublishedDate,
	FieldReadDate,
	FieldSummary,
	FieldThoughts,
	FieldResearch,
	FieldNotes,
}

// Draft is a book entry that has not been stored yet. It has no ID.
type Draft struct {
	Title            string `json:"title"`
	AuthorTranslator string `json:"author_translator"`
	Publisher        string `json:"publisher"`
	PublishedDate    string `json:"published_date"`
	ReadDate         string `json:"read_date"`
	Summary          string `json:"summary"`
	Thoughts         string `json:"thoughts"`
	Research         string `json:"research"`
	Notes            string `json:"notes"`
}

// Book is a stored reading-log entry. ID is assigned by the backend.
type Book struct {
	ID int64 `json:"id"`
	Draft
}

// NewDraft returns a blank draft whose two date fields are set to today's
// date in today's location.
func NewDraft(today time.Time) Draft {
	d := today.Format(DateLayout)
	return Draft{PublishedDate: d, ReadDate: d}
}

// Set overwrites one named field and leaves the others alone.
func (d *Draft) Set(field, value string) error {
	p := d.field(field)
	if p == nil {
		return ErrUnknownField
	}
	*p = value
	return nil
}

// Get returns the value of a named field, or "" for unknown names.
func (d Draft) Get(field string) string {
	if p := d.field(field); p != nil {
		return *p
	}
	return ""
}

func (d *Draft) field(name string) *string {
	switch name {
	case FieldTitle:
		return &d.Title
	case FieldAuthorTranslator:
		return &d.AuthorTranslator
	case FieldPublisher:
		return &d.Publisher
	case FieldPublishedDate:
		return &d.PublishedDate
	case FieldReadDate:
		return &d.ReadDate
	case FieldSummary:
		return &d.Summary
	case FieldThoughts:
		return &d.Thoughts
	case FieldResearch:
		return &d.Research
	case FieldNotes:
		return &d.Notes
	}
	return nil
}
