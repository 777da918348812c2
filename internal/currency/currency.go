// Package currency validates the currency codes stored in preference rows.
package currency

import "strings"

// Supported lists the currency codes the converter offers. The preference
// store rejects any pair outside this set before touching the database.
var Supported = map[string]bool{
	"USD": true,
	"EUR": true,
	"MXN": true,
	"ARS": true,
	"COP": true,
	"CLP": true,
	"PEN": true,
	"GBP": true,
	"JPY": true,
	"BRL": true,
	"CAD": true,
}

// Normalize trims whitespace and uppercases a user-supplied code
// ("  usd " -> "USD").
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsSupported reports whether a normalized code is in the supported set.
func IsSupported(code string) bool {
	return Supported[code]
}

// Codes returns the supported codes in no particular order, for error
// messages and docs.
func Codes() []string {
	out := make([]string, 0, len(Supported))
	for code := range Supported {
		out = append(out, code)
	}
	return out
}
