// Package forms implements the validation and normalization core shared by
// every admin screen: per-field validators, password strength scoring, form
// state tracking and change-set computation for partial updates.
package forms

import (
	"strings"

	"obras-backend/pkg/brl"
)

// ValidationResult classifies a single field value. A new result is produced
// on every change; results are never mutated in place.
type ValidationResult struct {
	IsValid  bool   `json:"is_valid"`
	Message  string `json:"message,omitempty"`
	Strength int    `json:"strength,omitempty"`
}

func valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{IsValid: false, Message: message}
}

// Field messages shown inline on the forms.
const (
	MsgRequired      = "campo obrigatório"
	MsgTooShort      = "mínimo de 3 caracteres"
	MsgFullName      = "informe nome e sobrenome"
	MsgInvalidEmail  = "e-mail inválido"
	MsgInvalidPhone  = "telefone inválido"
	MsgInvalidCPF    = "CPF inválido"
	MsgShortPassword = "a senha deve ter pelo menos 8 caracteres"
	MsgWeakPassword  = "senha fraca"
	MsgStrongPass    = "senha forte"
	MsgNegativeValue = "o valor não pode ser negativo"
	MsgStartAfterEnd = "data de início posterior à previsão de conclusão"
	MsgEndBeforeStart = "data de término anterior à data de início"
)

// ValidateName checks a simple display name: required, at least 3 characters
// after trimming.
func ValidateName(value string) ValidationResult {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return invalid(MsgRequired)
	}
	if len([]rune(trimmed)) < 3 {
		return invalid(MsgTooShort)
	}
	return valid()
}

// ValidateFullName is the user-form variant of ValidateName: the trimmed
// value must contain at least two space-separated tokens.
func ValidateFullName(value string) ValidationResult {
	if r := ValidateName(value); !r.IsValid {
		return r
	}
	if len(strings.Fields(value)) < 2 {
		return invalid(MsgFullName)
	}
	return valid()
}

// ValidateEmail checks the local@domain.tld shape: exactly one "@", at least
// one "." after it and no embedded whitespace.
func ValidateEmail(value string) ValidationResult {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return invalid(MsgRequired)
	}
	if strings.ContainsAny(trimmed, " \t") {
		return invalid(MsgInvalidEmail)
	}
	at := strings.Index(trimmed, "@")
	if at <= 0 || at != strings.LastIndex(trimmed, "@") {
		return invalid(MsgInvalidEmail)
	}
	domain := trimmed[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return invalid(MsgInvalidEmail)
	}
	return valid()
}

// ValidatePhone accepts Brazilian landline and mobile numbers: 10 or 11
// digits after stripping the mask.
func ValidatePhone(value string) ValidationResult {
	if strings.TrimSpace(value) == "" {
		return invalid(MsgRequired)
	}
	n := len(Digits(value))
	if n != 10 && n != 11 {
		return invalid(MsgInvalidPhone)
	}
	return valid()
}

// ValidateCPF checks that the value carries the 11 digits of a CPF document.
func ValidateCPF(value string) ValidationResult {
	if strings.TrimSpace(value) == "" {
		return invalid(MsgRequired)
	}
	if len(Digits(value)) != 11 {
		return invalid(MsgInvalidCPF)
	}
	return valid()
}

// ValidatePassword requires at least 8 characters and a strength score of 3
// or better. The computed strength is carried on the result so the form can
// render the strength meter.
func ValidatePassword(value string) ValidationResult {
	if value == "" {
		return invalid(MsgRequired)
	}
	if len(value) < 8 {
		return ValidationResult{IsValid: false, Message: MsgShortPassword, Strength: Strength(value)}
	}
	strength := Strength(value)
	if strength < 3 {
		return ValidationResult{IsValid: false, Message: MsgWeakPassword, Strength: strength}
	}
	return ValidationResult{IsValid: true, Message: MsgStrongPass, Strength: strength}
}

// ValidateProjectName checks an obra or pasta title: required, at least 3
// characters after trimming.
func ValidateProjectName(value string) ValidationResult {
	return ValidateName(value)
}

// ValidateAmount checks that a monetary value normalizes to a non-negative
// amount. Values that cannot be read at all are left for the amount mask to
// clean up and pass here.
func ValidateAmount(value interface{}) ValidationResult {
	amount, ok := brl.Normalize(value)
	if !ok {
		return valid()
	}
	if amount < 0 {
		return invalid(MsgNegativeValue)
	}
	return valid()
}

// Date-range validators compare ISO yyyy-mm-dd strings; lexical order is
// date order for that layout. Both sides must be present for the check to
// apply.

// ValidateStartBeforeExpected fails when the start date is after the
// expected completion date.
func ValidateStartBeforeExpected(start, expected string) ValidationResult {
	if start != "" && expected != "" && start > expected {
		return invalid(MsgStartAfterEnd)
	}
	return valid()
}

// ValidateEndAfterStart fails when the end date precedes the start date.
func ValidateEndAfterStart(end, start string) ValidationResult {
	if end != "" && start != "" && end < start {
		return invalid(MsgEndBeforeStart)
	}
	return valid()
}

// Digits strips everything except ASCII digits from a string.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
