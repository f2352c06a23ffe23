package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	cases := map[string]bool{
		"+7 (912) 345-67-89": true,
		"89123456789":        true,
		"12345":              true,
		"1234":               false,
		"":                   false,
		"call me":            false,
		"12+345678":          false,
		"+1234567890123456":  false,
	}

	for in, want := range cases {
		assert.Equal(t, want, IsPhoneValid(in), in)
	}
}

func TestIsEmailSyntaxValid(t *testing.T) {
	cases := map[string]bool{
		"anna@example.com":         true,
		"a.b+tag@mail.example.org": true,
		"no-at-sign":               false,
		"trailing@":                false,
		"@example.com":             false,
		"anna@localhost":           false,
		"Anna <anna@example.com>":  false,
		"":                         false,
	}

	for in, want := range cases {
		assert.Equal(t, want, IsEmailSyntaxValid(in), in)
	}
}

func TestIsEmailDomainValid_RejectsMalformed(t *testing.T) {
	assert.False(t, IsEmailDomainValid("no-at-sign"))
	assert.False(t, IsEmailDomainValid("trailing@"))
}
