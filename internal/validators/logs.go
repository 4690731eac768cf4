package validators

import (
	"strings"
	"time"

	"github.com/Egor213/LogOps/internal/domain"
)

const (
	FieldTimestamp = "timestamp"
	FieldLevel     = "level"
	FieldService   = "service"
	FieldMessage   = "message"
	FieldMetadata  = "metadata"
)

// Accepted ISO-8601 shapes. Layouts without a zone parse as UTC.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z07",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	"2006-01-02",
}

// Validate turns a raw payload into a log event ready to be stored. Checks run
// in a fixed order and the first failure is returned. ID and CreatedAt are left
// for the store.
func Validate(raw domain.RawEvent, now time.Time) (*domain.LogEvent, error) {
	level, ok := domain.ParseLevel(stringField(raw, FieldLevel))
	if !ok {
		return nil, ErrInvalidLevel
	}

	service := strings.TrimSpace(stringField(raw, FieldService))
	if service == "" {
		return nil, MissingField(FieldService)
	}

	message := strings.TrimSpace(stringField(raw, FieldMessage))
	if message == "" {
		return nil, MissingField(FieldMessage)
	}

	ts, err := timestampField(raw, now)
	if err != nil {
		return nil, err
	}

	meta, err := domain.NewMetadata(raw[FieldMetadata])
	if err != nil {
		return nil, ErrInvalidMetadata
	}

	return &domain.LogEvent{
		Timestamp: ts,
		Level:     level,
		Service:   service,
		Message:   message,
		Metadata:  meta,
	}, nil
}

// ParseTimestamp parses an ISO-8601 instant and converts it to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func timestampField(raw domain.RawEvent, now time.Time) (time.Time, error) {
	v, ok := raw[FieldTimestamp]
	if !ok || v == nil {
		return now.UTC(), nil
	}

	s, isString := v.(string)
	if !isString {
		return time.Time{}, ErrInvalidTimestamp
	}
	if s == "" {
		return now.UTC(), nil
	}

	ts, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return ts, nil
}

// Non-string values read as empty, so they fail the same way a missing field does.
func stringField(raw domain.RawEvent, key string) string {
	s, _ := raw[key].(string)
	return s
}
