package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseSlug(t *testing.T) {
	assert.Equal(t, "anna-smith", BaseSlug("Anna Smith"))
	assert.Equal(t, "master", BaseSlug("   "))
	assert.Equal(t, "master", BaseSlug("!!!"))

	long := BaseSlug(strings.Repeat("abc ", 40))
	assert.LessOrEqual(t, len(long), maxSlugLength)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "anna", SlugCandidate("anna", 0))
	assert.Equal(t, "anna-1", SlugCandidate("anna", 1))
	assert.Equal(t, "anna-2", SlugCandidate("anna", 2))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", NormalizeEmail("  Anna@Example.COM "))
}
