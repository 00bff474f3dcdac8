package currency

import (
	"strconv"
	"strings"
)

// Format renders an amount under a currency's display rules: round to
// Precision decimal places, group the integer part with the Thousand
// separator every three digits, join integer and fraction with the
// Decimal separator (omitted entirely when Precision is 0), then
// substitute %s -> symbol and %v -> number into the Format template.
//
// A negative sign rides with the number through the same pipeline, so
// "-1234.5" in USD renders as "$-1,234.50".
func Format(amount float64, c Currency) string {
	// FormatFloat both rounds to precision and carries the sign.
	fixed := strconv.FormatFloat(amount, 'f', c.Precision, 64)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart := fixed
	fracPart := ""
	if dot := strings.IndexByte(fixed, '.'); dot >= 0 {
		intPart = fixed[:dot]
		fracPart = fixed[dot+1:]
	}

	num := sign + groupThousands(intPart, c.Thousand)
	if c.Precision > 0 {
		num += c.Decimal + fracPart
	}

	out := strings.ReplaceAll(c.Format, "%s", c.Symbol)
	return strings.ReplaceAll(out, "%v", num)
}

// FormatCode is a convenience wrapper resolving the currency by code first.
func FormatCode(amount float64, code string) string {
	return Format(amount, ByCode(code))
}

// groupThousands inserts sep every three digits, right to left.
func groupThousands(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	b.Grow(len(digits) + (len(digits)-1)/3*len(sep))

	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
