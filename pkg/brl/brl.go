// Package brl formats and parses Brazilian Real currency values the way the
// admin forms display them: "R$ 1.500,00" with dot thousand grouping and a
// comma decimal separator. All functions are total; malformed input degrades
// to zero instead of failing.
package brl

import (
	"strconv"
	"strings"
)

const symbol = "R$ "

// Format renders an integer number of centavos as a display string.
// Format(150000) == "R$ 1.500,00".
func Format(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(symbol)

	// Thousand grouping with dots, left to right.
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}

	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// FormatIncremental treats raw keyboard input as a stream of centavo digits
// and renders the running currency value, supporting the "type digits, watch
// the amount grow" behavior of the amount inputs. Empty or digit-free input
// produces an empty string.
func FormatIncremental(raw string) string {
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}
	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		// More digits than an int64 holds; clamp to the parseable prefix.
		digits = digits[:18]
		cents, _ = strconv.ParseInt(digits, 10, 64)
	}
	return Format(cents)
}

// Parse reads a display string produced by Format or FormatIncremental back
// into a float amount. Non-digit characters are ignored and the digit run is
// taken as centavos, so Parse(FormatIncremental(d)) == digits(d)/100.
// Empty or digit-free input parses to 0.
func Parse(display string) float64 {
	digits := onlyDigits(display)
	if digits == "" {
		return 0
	}
	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return float64(cents) / 100
}

// Normalize converts an arbitrary form value into a float amount for
// change detection. Numeric values pass through; strings are read in the
// Brazilian locale (dots group thousands, comma separates decimals), so
// "R$ 1.000,001" normalizes to 1000.001. The second return is false when
// the value cannot be read as an amount at all.
func Normalize(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		return normalizeString(v)
	default:
		return 0, false
	}
}

func normalizeString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		// Locale form: dots are thousand separators, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
