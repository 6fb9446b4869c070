package post

import (
	"fmt"
	"strings"
	"time"
)

const (
	keyTitle = "title"
	keyDate  = "date"
)

// dateLayouts are tried in order for string dates. Layouts without a zone
// are interpreted as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// fieldError names the offending metadata field.
type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.reason)
}

// DecodeMetadata validates a raw metadata map into a typed record.
func DecodeMetadata(fields map[string]any) (Metadata, error) {
	md := Metadata{Extra: make(map[string]any)}
	for k, v := range fields {
		if k != keyTitle && k != keyDate {
			md.Extra[k] = v
		}
	}

	rawTitle, ok := fields[keyTitle]
	if !ok || rawTitle == nil {
		return Metadata{}, &fieldError{keyTitle, "missing"}
	}
	title, ok := rawTitle.(string)
	if !ok {
		// Numbers and booleans are legal YAML titles.
		title = fmt.Sprint(rawTitle)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Metadata{}, &fieldError{keyTitle, "empty"}
	}
	md.Title = title

	rawDate, ok := fields[keyDate]
	if !ok || rawDate == nil {
		return Metadata{}, &fieldError{keyDate, "missing"}
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return Metadata{}, &fieldError{keyDate, err.Error()}
	}
	md.Date = date

	return md, nil
}

// ParseDate converts a YAML date value into a time.
func ParseDate(v any) (time.Time, error) {
	switch d := v.(type) {
	case time.Time:
		return d, nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	default:
		return time.Time{}, fmt.Errorf("expected a timestamp, got %T", v)
	}
}
