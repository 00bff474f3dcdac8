package currency

import "testing"

func TestFormat(t *testing.T) {
	usd := ByCode("usd")
	eur := ByCode("eur")
	jpy := ByCode("jpy")

	tests := []struct {
		name     string
		amount   float64
		currency Currency
		expected string
	}{
		{"USDWithGroupingAndPad", 1234.5, usd, "$1,234.50"},
		{"USDSmall", 7, usd, "$7.00"},
		{"USDExactCents", 0.01, usd, "$0.01"},
		{"USDRoundsHalfUp", 2.005, usd, "$2.00"}, // 2.005 is stored below 2.005 in binary
		{"USDMillions", 1234567.891, usd, "$1,234,567.89"},
		{"USDZero", 0, usd, "$0.00"},
		{"USDNegative", -1234.5, usd, "$-1,234.50"},
		{"EURSuffixSymbol", 1234.56, eur, "1.234,56 €"},
		{"JPYNoDecimals", 100, jpy, "¥100"},
		{"JPYRoundsToWhole", 99.6, jpy, "¥100"},
		{"JPYGrouping", 1234567, jpy, "¥1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.amount, tt.currency); got != tt.expected {
				t.Errorf("Format(%v): got %q, want %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestFormatCustomTemplate(t *testing.T) {
	c := Currency{
		Code: "xxx", Symbol: "X", Decimal: ".", Thousand: ",",
		Precision: 2, Format: "%s %v",
	}
	if got := Format(1000, c); got != "X 1,000.00" {
		t.Errorf("got %q, want %q", got, "X 1,000.00")
	}
}

func TestByCode(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"usd", "usd"},
		{"USD", "usd"},
		{"eur", "eur"},
		{"jpy", "jpy"},
		{"xyz", "usd"}, // unknown falls back to default
		{"", "usd"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ByCode(tt.code); got.Code != tt.expected {
				t.Errorf("ByCode(%q): got %q, want %q", tt.code, got.Code, tt.expected)
			}
		})
	}
}

func TestDefaultIsUSD(t *testing.T) {
	if Default().Code != "usd" {
		t.Errorf("default currency: got %q, want usd", Default().Code)
	}
}

func TestFormatCode(t *testing.T) {
	if got := FormatCode(1234.5, "usd"); got != "$1,234.50" {
		t.Errorf("FormatCode: got %q, want $1,234.50", got)
	}
	// Unknown codes format with the default currency rather than failing.
	if got := FormatCode(5, "nope"); got != "$5.00" {
		t.Errorf("FormatCode unknown: got %q, want $5.00", got)
	}
}

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		digits   string
		expected string
	}{
		{"1", "1"},
		{"123", "123"},
		{"1234", "1,234"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.digits, func(t *testing.T) {
			if got := groupThousands(tt.digits, ","); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func BenchmarkFormat(b *testing.B) {
	usd := Default()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Format(1234567.89, usd)
	}
}
