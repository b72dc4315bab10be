package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"abc", 1},           // lowercase only
		{"abcdefgh", 2},      // length + lowercase
		{"Abcdefgh", 3},      // + uppercase
		{"Abcdefg1", 4},      // + digit
		{"Abcdef1!", 5},      // + symbol
		{"!@#$%^&*", 2},      // length + symbols
		{"A1!", 3},           // short but varied
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Strength(tt.password), "password %q", tt.password)
	}
}

// Adding one criterion at a time never decreases the score, and the score
// stays inside [0,5].
func TestStrengthMonotone(t *testing.T) {
	steps := []string{"", "a", "abcdefgh", "Abcdefgh", "Abcdefg1", "Abcdef1!"}
	prev := -1
	for _, p := range steps {
		s := Strength(p)
		assert.GreaterOrEqual(t, s, 0)
		assert.LessOrEqual(t, s, 5)
		assert.GreaterOrEqual(t, s, prev, "password %q", p)
		prev = s
	}
}
