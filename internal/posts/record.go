// Package posts holds the post domain model shared by the list, detail and
// creation views: the immutable Record returned by the API, the mutable
// Draft behind the creation form, and the client-side search filter.
package posts

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of CreationDate (ISO calendar date).
const DateLayout = "2006-01-02"

// Record is a post as returned by the remote API.
// Records are never edited in place by the client.
type Record struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	CreationDate string `json:"creationDate"`
	Content      string `json:"content"`
}

// Date parses CreationDate. The zero time is returned with an error for
// values that are not ISO dates.
func (r Record) Date() (time.Time, error) {
	return ParseDate(r.CreationDate)
}

// ParseDate parses an ISO YYYY-MM-DD value.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid creation date %q: %w", value, err)
	}
	return t, nil
}

// Field names a draft field. The values match the JSON keys of the
// creation payload.
type Field string

const (
	FieldTitle        Field = "title"
	FieldAuthor       Field = "author"
	FieldCreationDate Field = "creationDate"
	FieldContent      Field = "content"
)

// Fields lists the draft fields in form order.
var Fields = []Field{FieldTitle, FieldAuthor, FieldCreationDate, FieldContent}

// ErrUnknownField is returned when a draft mutation names a field that does
// not exist.
var ErrUnknownField = errors.New("unknown draft field")

// Draft is the unsaved state of the creation form. It has no id; the API
// assigns one on creation.
type Draft struct {
	Title        string `json:"title"`
	Author       string `json:"author"`
	CreationDate string `json:"creationDate"`
	Content      string `json:"content"`
}

// Set updates one field.
func (d *Draft) Set(f Field, value string) error {
	switch f {
	case FieldTitle:
		d.Title = value
	case FieldAuthor:
		d.Author = value
	case FieldCreationDate:
		d.CreationDate = value
	case FieldContent:
		d.Content = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
	return nil
}

// Get returns the value of one field, or "" for an unknown field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldAuthor:
		return d.Author
	case FieldCreationDate:
		return d.CreationDate
	case FieldContent:
		return d.Content
	}
	return ""
}

// Complete reports whether every field is non-empty after trimming
// whitespace.
func (d Draft) Complete() bool {
	for _, f := range Fields {
		if strings.TrimSpace(d.Get(f)) == "" {
			return false
		}
	}
	return true
}
