package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a.b+tag@sub.example.co",
	}
	for _, email := range valid {
		assert.NoError(t, Email(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"@example.com",
		"alice@",
		"alice@nodot",
		strings.Repeat("a", 250) + "@example.com",
	}
	for _, email := range invalid {
		assert.Error(t, Email(email), email)
	}
}

func TestPersonName(t *testing.T) {
	assert.NoError(t, PersonName("first_name", "Alice"))
	assert.Error(t, PersonName("first_name", ""))
	assert.Error(t, PersonName("first_name", strings.Repeat("x", 101)))
	assert.Error(t, PersonName("first_name", "bad\x00name"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, Phone(""))
	assert.NoError(t, Phone("+1 555 0100"))
	assert.NoError(t, Phone("(020) 7946-0958"))
	assert.Error(t, Phone("abc"))
	assert.Error(t, Phone("123"))
	assert.Error(t, Phone(strings.Repeat("1", 30)))
}

func TestImageContentType(t *testing.T) {
	assert.NoError(t, ImageContentType(""))
	assert.NoError(t, ImageContentType("image/png"))
	assert.NoError(t, ImageContentType("image/jpeg"))
	assert.Error(t, ImageContentType("application/pdf"))
	assert.Error(t, ImageContentType("not a media type"))
}
