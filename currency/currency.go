// Package currency provides the static currency registry and the pure
// display formatter used everywhere an amount is shown.
//
// Amounts flow through Billfold as exact float64 values; rounding happens
// only here, at formatting time, so summed totals never accumulate
// per-line rounding drift.
package currency

import "strings"

// Currency describes how amounts in one currency are displayed.
type Currency struct {
	Code      string `json:"code"`      // ISO 4217 lowercase: "usd", "eur", "jpy"
	Symbol    string `json:"symbol"`    // "$", "€", "¥"
	Decimal   string `json:"decimal"`   // decimal separator
	Thousand  string `json:"thousand"`  // thousand separator
	Precision int    `json:"precision"` // decimal places; 0 omits the decimal separator
	Format    string `json:"format"`    // display template: %s = symbol, %v = number
}

// registry holds every known currency, keyed by lowercase code.
// Insertion order is preserved for All.
var registry = []Currency{
	{Code: "usd", Symbol: "$", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
	{Code: "eur", Symbol: "€", Decimal: ",", Thousand: ".", Precision: 2, Format: "%v %s"},
	{Code: "gbp", Symbol: "£", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
	{Code: "jpy", Symbol: "¥", Decimal: ".", Thousand: ",", Precision: 0, Format: "%s%v"},
	{Code: "cad", Symbol: "C$", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
	{Code: "aud", Symbol: "A$", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
	{Code: "chf", Symbol: "CHF ", Decimal: ".", Thousand: "'", Precision: 2, Format: "%s%v"},
	{Code: "cny", Symbol: "¥", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
	{Code: "sek", Symbol: "kr", Decimal: ",", Thousand: " ", Precision: 2, Format: "%v %s"},
	{Code: "nzd", Symbol: "NZ$", Decimal: ".", Thousand: ",", Precision: 2, Format: "%s%v"},
}

// Default is the currency used when no code is given or the code is unknown.
func Default() Currency { return registry[0] } // USD

// ByCode looks up a currency by its ISO code (case-insensitive).
// Unknown codes return the default currency; this never fails.
func ByCode(code string) Currency {
	code = strings.ToLower(code)
	for _, c := range registry {
		if c.Code == code {
			return c
		}
	}
	return Default()
}

// All returns every registered currency in registry order.
func All() []Currency {
	out := make([]Currency, len(registry))
	copy(out, registry)
	return out
}
