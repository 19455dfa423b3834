package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secure-pass-7")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, Verify("secure-pass-7", hash))
	assert.False(t, Verify("wrong-pass-7", hash))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := Hash("")
	assert.Error(t, err)
}

func TestVerifyBadHash(t *testing.T) {
	assert.False(t, Verify("whatever", "not-a-bcrypt-hash"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "secure-pass-7", false},
		{"minimum length", "abcdefg1", false},
		{"too short", "abc1", true},
		{"no digit", "passwordonly", true},
		{"no letter", "1234567890", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
