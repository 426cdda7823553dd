package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last@sub.example.org", "a-b@c-d.io"}
	for _, e := range valid {
		assert.True(t, ValidEmail(e), e)
	}

	invalid := []string{"", "plain", "@example.com", "user@", "user@example", "user @example.com"}
	for _, e := range invalid {
		assert.False(t, ValidEmail(e), e)
	}
}
