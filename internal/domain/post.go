package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Post describes a displayable social-platform post relayed to chat sinks.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	URL         string    `json:"url"`
	Image       *string   `json:"image,omitempty"`
	Thumbnail   *string   `json:"thumbnail,omitempty"`
}

// Field names one of the declared Post fields.
type Field string

const (
	FieldID          Field = "id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldDate        Field = "date"
	FieldURL         Field = "url"
	FieldImage       Field = "image"
	FieldThumbnail   Field = "thumbnail"
)

// Fields lists every declared Post field in declaration order.
func Fields() []Field {
	return []Field{FieldID, FieldTitle, FieldDescription, FieldDate, FieldURL, FieldImage, FieldThumbnail}
}

// ErrUnknownField is returned by Get and Set for names outside the declared field set.
var ErrUnknownField = errors.New("unknown post field")

// ValidationError reports a required field that is missing or a value of the wrong type.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("post field %q %s", e.Field, e.Reason)
}

// PostOption sets an optional field during construction.
type PostOption func(*Post)

// WithImage attaches an image URL. Blank values leave the image absent.
func WithImage(url string) PostOption {
	return func(p *Post) { p.Image = optional(url) }
}

// WithThumbnail attaches a thumbnail URL. Blank values leave the thumbnail absent.
func WithThumbnail(url string) PostOption {
	return func(p *Post) { p.Thumbnail = optional(url) }
}

// NewPost builds a Post, failing with a *ValidationError when a required field is missing.
func NewPost(id, title, description string, date time.Time, url string, opts ...PostOption) (*Post, error) {
	p := &Post{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
		URL:         url,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that every required field is present.
func (p *Post) Validate() error {
	required := []struct {
		field Field
		value string
	}{
		{FieldID, p.ID},
		{FieldTitle, p.Title},
		{FieldDescription, p.Description},
		{FieldURL, p.URL},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return missing(r.field)
		}
	}
	if p.Date.IsZero() {
		return missing(FieldDate)
	}
	return nil
}

// Get returns the current value of a declared field. Optional fields come back
// as a fresh *string, nil when absent, so writes through it never reach p.
func (p *Post) Get(f Field) (any, error) {
	switch f {
	case FieldID:
		return p.ID, nil
	case FieldTitle:
		return p.Title, nil
	case FieldDescription:
		return p.Description, nil
	case FieldDate:
		return p.Date, nil
	case FieldURL:
		return p.URL, nil
	case FieldImage:
		return cloneString(p.Image), nil
	case FieldThumbnail:
		return cloneString(p.Thumbnail), nil
	default:
		return nil, fmt.Errorf("get %q: %w", f, ErrUnknownField)
	}
}

// Set overwrites a single declared field. Required fields cannot be blanked;
// optional fields accept string, *string or nil, where nil or "" clears them.
func (p *Post) Set(f Field, value any) error {
	switch f {
	case FieldID:
		return setRequired(f, &p.ID, value)
	case FieldTitle:
		return setRequired(f, &p.Title, value)
	case FieldDescription:
		return setRequired(f, &p.Description, value)
	case FieldURL:
		return setRequired(f, &p.URL, value)
	case FieldDate:
		t, ok := value.(time.Time)
		if !ok {
			return wrongType(f, "time.Time", value)
		}
		if t.IsZero() {
			return missing(f)
		}
		p.Date = t
		return nil
	case FieldImage:
		return setOptional(f, &p.Image, value)
	case FieldThumbnail:
		return setOptional(f, &p.Thumbnail, value)
	default:
		return fmt.Errorf("set %q: %w", f, ErrUnknownField)
	}
}

// ImageURL returns the image URL and whether one is present.
func (p *Post) ImageURL() (string, bool) { return deref(p.Image) }

// ThumbnailURL returns the thumbnail URL and whether one is present.
func (p *Post) ThumbnailURL() (string, bool) { return deref(p.Thumbnail) }

func setRequired(f Field, dst *string, value any) error {
	s, ok := value.(string)
	if !ok {
		return wrongType(f, "string", value)
	}
	if strings.TrimSpace(s) == "" {
		return missing(f)
	}
	*dst = s
	return nil
}

func setOptional(f Field, dst **string, value any) error {
	switch v := value.(type) {
	case nil:
		*dst = nil
	case string:
		*dst = optional(v)
	case *string:
		if v == nil {
			*dst = nil
			return nil
		}
		*dst = optional(*v)
	default:
		return wrongType(f, "string", value)
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func missing(f Field) error {
	return &ValidationError{Field: f, Reason: "is required"}
}

func wrongType(f Field, want string, got any) error {
	return &ValidationError{Field: f, Reason: fmt.Sprintf("must be %s, got %T", want, got)}
}
