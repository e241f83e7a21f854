package services

import (
	"testing"

	"github.com/fitgear/fitgear-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"valid", models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "secret"}, ""},
		{"blank name", models.RegisterRequest{Name: "  ", Email: "jane@example.com", Password: "secret"}, "name"},
		{"bad email", models.RegisterRequest{Name: "Jane", Email: "jane@example", Password: "secret"}, "email"},
		{"email with spaces", models.RegisterRequest{Name: "Jane", Email: "ja ne@example.com", Password: "secret"}, "email"},
		{"short password", models.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "12345"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, msg, ok := ValidateRegistration(tt.req)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.field == "", ok)
			if !ok {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
	assert.False(t, CheckPassword("", "secret1"))
}
