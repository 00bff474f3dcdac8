package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateLayout is the canonical wire and storage form for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day semantics. Its text form is
// always a bare "YYYY-MM-DD" string; comparisons and day arithmetic operate
// on whole days in UTC. The zero Date marks an absent/unknown date.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type Date struct {
	t time.Time // midnight UTC
}

// NewDate creates a Date from a year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("types: parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// NormalizeDate coerces any supported due-date representation to a bare
// calendar Date. It accepts Date values, time.Time values, "YYYY-MM-DD"
// strings, and RFC 3339 timestamps (the time component is stripped).
// Anything unparseable, including empty input, falls back to today.
//
// This is the single normalization boundary: every write path runs due
// dates through here so that stored invoices always carry a valid bare
// date, and normalization is idempotent.
func NormalizeDate(v any, today Date) Date {
	switch d := v.(type) {
	case Date:
		if d.IsZero() {
			return today
		}
		return d
	case time.Time:
		if d.IsZero() {
			return today
		}
		return DateOf(d)
	case string:
		if parsed, err := ParseDate(d); err == nil {
			return parsed
		}
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return DateOf(t.UTC())
		}
		return today
	default:
		return today
	}
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether two dates fall on the same day.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysUntil returns the number of whole days from d to other.
// Negative when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// String returns the canonical "YYYY-MM-DD" form, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*d = Date{}

		return nil
	}

	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Value implements driver.Valuer for database storage.
// The zero Date stores NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil //nolint:nilnil // nil is the canonical NULL for driver.Valuer
	}

	return d.String(), nil
}

// Scan implements sql.Scanner for database retrieval.
func (d *Date) Scan(src any) error {
	if src == nil {
		*d = Date{}

		return nil
	}

	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = DateOf(v)

		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into Date", src)
	}
}
