package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the column format for calendar dates.
const DateLayout = "2006-01-02"

// FormatTime renders a timestamp column value.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// NullTime renders an optional timestamp; the zero time becomes NULL.
func NullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return FormatTime(t)
}

// ParseTime parses a stored timestamp, tolerating the layouts older rows were written with.
func ParseTime(value string) (time.Time, error) {
	if idx := strings.Index(value, " m="); idx != -1 {
		value = value[:idx]
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05.999999999 -0700 MST",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported time format: %q", value)
}

// ParseNullTime parses an optional timestamp; NULL becomes the zero time.
func ParseNullTime(value sql.NullString) (time.Time, error) {
	if !value.Valid || value.String == "" {
		return time.Time{}, nil
	}
	return ParseTime(value.String)
}

// FormatDate renders a calendar date column value.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a calendar date column into midnight in the local zone.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date %q: %w", value, err)
	}
	return t, nil
}

// Cents converts a currency amount to an integer count of cents, rounding half away from zero.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

// FromCents converts a stored cents count back to a currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// NullString maps the empty string to NULL.
func NullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Bool renders a boolean column value.
func Bool(b bool) int {
	if b {
		return 1
	}
	return 0
}

// EncodeJSON renders a JSON column value.
func EncodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(b), nil
}

// DecodeJSON parses a JSON column value into v; an empty column leaves v untouched.
func DecodeJSON(value string, v any) error {
	if value == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}
