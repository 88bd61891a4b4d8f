package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("SuperSecret1")
	require.NoError(t, err)
	assert.NotEqual(t, "SuperSecret1", hash)

	assert.True(t, CheckPassword(hash, "SuperSecret1"))
	assert.False(t, CheckPassword(hash, "SuperSecret2"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Password1", false},
		{"too short", "Pass1", true},
		{"no uppercase", "password1", true},
		{"no lowercase", "PASSWORD1", true},
		{"no number", "Passwordd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	assert.Equal(t, "cook@foodnest.io", SanitizeEmail("  Cook@FoodNest.IO "))
	assert.Equal(t, "cook@foodnest.io", SanitizeEmail("<b>cook@foodnest.io</b>"))
}
