package forms

import "fmt"

// MaskPhone formats a Brazilian phone number as the user types. Ten digits
// render as a landline "(11) 1234-5678", eleven as a mobile
// "(11) 91234-5678". Shorter digit runs are masked as far as they go.
func MaskPhone(value string) string {
	d := Digits(value)
	if len(d) > 11 {
		d = d[:11]
	}

	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	case len(d) <= 6:
		return fmt.Sprintf("(%s) %s", d[:2], d[2:])
	case len(d) <= 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	}
}

// MaskCPF formats a CPF document incrementally: "123.456.789-01".
func MaskCPF(value string) string {
	d := Digits(value)
	if len(d) > 11 {
		d = d[:11]
	}

	switch {
	case len(d) <= 3:
		return d
	case len(d) <= 6:
		return fmt.Sprintf("%s.%s", d[:3], d[3:])
	case len(d) <= 9:
		return fmt.Sprintf("%s.%s.%s", d[:3], d[3:6], d[6:])
	default:
		return fmt.Sprintf("%s.%s.%s-%s", d[:3], d[3:6], d[6:9], d[9:])
	}
}
