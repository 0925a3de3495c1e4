package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "lowercases and strips punctuation",
			input:    "Hello!!! How-are you?",
			expected: "hello how are you",
		},
		{
			name:     "removes filler words",
			input:    "Please share your OTP now",
			expected: "share your otp now",
		},
		{
			name:     "multiple fillers",
			input:    "Um, okay, so uh... the payment failed, haina?",
			expected: "so the payment failed",
		},
		{
			name:     "filler only inside word is kept",
			input:    "bring your umbrella",
			expected: "bring your umbrella",
		},
		{
			name:     "collapses whitespace runs",
			input:    "  too \t many\n\nspaces  ",
			expected: "too many spaces",
		},
		{
			name:     "digits survive",
			input:    "call me at 98765, thank you",
			expected: "call me at 98765 you",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeRemovesFillersAsWholeWords(t *testing.T) {
	got := Normalize("Please say OTP okay")

	words := strings.Fields(got)
	assert.NotContains(t, words, "please")
	assert.NotContains(t, words, "okay")
	assert.Contains(t, words, "otp")
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Please share your OTP now",
		"Um, okay... THANK you!!!",
		"   spaced    out   ",
		"no fillers here at all",
		"symbols #$%^& everywhere 123",
		"généric ünïcode façade",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
