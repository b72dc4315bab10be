package forms

// Strength scores a password from 0 to 5 using five independent criteria:
// length of at least 8, a lowercase letter, an uppercase letter, a digit and
// a character outside [A-Za-z0-9]. The score is purely additive and
// order-insensitive.
func Strength(password string) int {
	score := 0
	if len(password) >= 8 {
		score++
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	if hasLower {
		score++
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}
	return score
}
