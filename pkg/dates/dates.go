// Package dates converts between the wire date format (ISO yyyy-mm-dd) and
// the Brazilian display format (dd/mm/yyyy) used across the admin screens.
// Every function is total: malformed input maps to a fallback value and
// never causes a panic.
package dates

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoLayout      = "2006-01-02"
	displayLayout  = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04"

	// DefaultFallback is rendered for absent or unreadable dates.
	DefaultFallback = "--"
)

// ToISO converts a dd/mm/yyyy input into yyyy-mm-dd, zero-padding day and
// month. Returns "" when the input does not have three non-empty segments.
func ToISO(slashDate string) string {
	parts := strings.Split(strings.TrimSpace(slashDate), "/")
	if len(parts) != 3 {
		return ""
	}
	day, month, year := parts[0], parts[1], parts[2]
	if day == "" || month == "" || year == "" {
		return ""
	}
	return fmt.Sprintf("%s-%s-%s", year, pad2(month), pad2(day))
}

// Format renders any supported date value as dd/mm/yyyy, using
// DefaultFallback for nil, empty or unparseable input.
func Format(value interface{}) string {
	return FormatOr(value, DefaultFallback)
}

// FormatOr is Format with a caller-chosen fallback string.
func FormatOr(value interface{}, fallback string) string {
	t, ok := parseAny(value)
	if !ok {
		return fallback
	}
	return t.Format(displayLayout)
}

// FormatDateTime renders a date value as dd/mm/yyyy hh:mm, with
// DefaultFallback for unreadable input.
func FormatDateTime(value interface{}) string {
	t, ok := parseAny(value)
	if !ok {
		return DefaultFallback
	}
	return t.Format(dateTimeLayout)
}

// Relative buckets the distance between t and now into a human label:
// same day, yesterday, days, weeks, months or years ago.
func Relative(t time.Time) string {
	return RelativeAt(t, time.Now())
}

// RelativeAt is Relative with an explicit reference time.
func RelativeAt(t, now time.Time) string {
	if sameDay(t, now) {
		return "Hoje"
	}

	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	// Ceiling day count, so 25 hours ago is 2 days.
	days := int((diff + 24*time.Hour - 1) / (24 * time.Hour))

	switch {
	case days <= 1:
		return "Ontem"
	case days < 7:
		return fmt.Sprintf("%d dias atrás", days)
	case days < 30:
		return plural(days/7, "semana")
	case days < 365:
		return plural(days/30, "mês")
	default:
		return plural(days/365, "ano")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		if unit == "mês" {
			return "1 mês atrás"
		}
		return fmt.Sprintf("1 %s atrás", unit)
	}
	if unit == "mês" {
		return fmt.Sprintf("%d meses atrás", n)
	}
	return fmt.Sprintf("%d %ss atrás", n, unit)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// parseAny accepts time.Time values, ISO strings, RFC3339 strings and
// dd/mm/yyyy strings. Calendar-invalid dates such as 31/02/2024 fail to
// parse and report false.
func parseAny(value interface{}) (time.Time, bool) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v, true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range []string{isoLayout, time.RFC3339, displayLayout, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
