package types

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"BareDate", "2024-05-01", "2024-05-01"},
		{"RFC3339Midnight", "2024-05-01T00:00:00Z", "2024-05-01"},
		{"RFC3339WithTime", "2024-05-01T18:30:00Z", "2024-05-01"},
		{"TimeValue", time.Date(2024, time.May, 1, 9, 45, 0, 0, time.UTC), "2024-05-01"},
		{"DateValue", NewDate(2024, time.May, 1), "2024-05-01"},
		{"Garbage", "05/01/2024", "2024-06-15"},
		{"Empty", "", "2024-06-15"},
		{"ZeroTime", time.Time{}, "2024-06-15"},
		{"ZeroDate", Date{}, "2024-06-15"},
		{"Nil", nil, "2024-06-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDate(tt.input, today)
			if got.String() != tt.expected {
				t.Errorf("got %q, want %q", got.String(), tt.expected)
			}
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	today := NewDate(2024, time.June, 15)

	// All three representations of May 1 2024 must normalize to the same
	// string, and re-normalizing the result must not change it.
	inputs := []any{
		"2024-05-01T00:00:00Z",
		"2024-05-01",
		time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
	}

	for _, in := range inputs {
		first := NormalizeDate(in, today)
		if first.String() != "2024-05-01" {
			t.Fatalf("normalize %v: got %q, want %q", in, first.String(), "2024-05-01")
		}
		second := NormalizeDate(first, today)
		if !second.Equal(first) {
			t.Errorf("normalize not idempotent for %v: %q != %q", in, second.String(), first.String())
		}
	}
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 31)

	if got := d.AddDays(1).String(); got != "2024-02-01" {
		t.Errorf("AddDays(1): got %q, want 2024-02-01", got)
	}
	if got := d.AddDays(30).String(); got != "2024-03-01" {
		t.Errorf("AddDays(30): got %q, want 2024-03-01", got)
	}

	due := NewDate(2024, time.May, 1)
	if got := due.DaysUntil(NewDate(2024, time.May, 31)); got != 30 {
		t.Errorf("DaysUntil: got %d, want 30", got)
	}
	if got := due.DaysUntil(NewDate(2024, time.April, 30)); got != -1 {
		t.Errorf("DaysUntil past: got %d, want -1", got)
	}
}

func TestDateComparison(t *testing.T) {
	a := NewDate(2024, time.May, 1)
	b := NewDate(2024, time.May, 2)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering incorrect")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After ordering incorrect")
	}
	if !a.Equal(NewDate(2024, time.May, 1)) {
		t.Error("Equal should match same day")
	}
}

func TestDateTextCodec(t *testing.T) {
	d := NewDate(2024, time.May, 1)

	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText error: %v", err)
	}
	if string(text) != "2024-05-01" {
		t.Errorf("MarshalText: got %q, want 2024-05-01", text)
	}

	var decoded Date
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText error: %v", err)
	}
	if !decoded.Equal(d) {
		t.Errorf("text round trip mismatch: got %q", decoded.String())
	}

	var zero Date
	if err := zero.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil) error: %v", err)
	}
	if !zero.IsZero() {
		t.Error("expected zero Date from empty text")
	}
}

func TestDateSQLCodec(t *testing.T) {
	d := NewDate(2024, time.May, 1)

	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	var scanned Date
	if err := scanned.Scan(v); err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if !scanned.Equal(d) {
		t.Errorf("sql round trip mismatch: got %q", scanned.String())
	}

	var fromNull Date
	if err := fromNull.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error: %v", err)
	}
	if !fromNull.IsZero() {
		t.Error("expected zero Date from NULL")
	}

	var fromTime Date
	if err := fromTime.Scan(time.Date(2024, time.May, 1, 13, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Scan(time) error: %v", err)
	}
	if fromTime.String() != "2024-05-01" {
		t.Errorf("Scan(time): got %q, want 2024-05-01", fromTime.String())
	}

	nv, err := (Date{}).Value()
	if err != nil {
		t.Fatalf("zero Value error: %v", err)
	}
	if nv != nil {
		t.Errorf("zero Value: got %v, want nil", nv)
	}
}
