package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const strongPassword = "carve-Tidal-Lantern-93!"

func TestNewOperator(t *testing.T) {
	op, err := NewOperator("maze_operator", strongPassword)
	require.NoError(t, err)

	assert.Equal(t, "maze_operator", op.Username)
	assert.NotEqual(t, strongPassword, op.PasswordHash)
	assert.NotEmpty(t, op.ID)

	t.Run("password verification", func(t *testing.T) {
		assert.True(t, op.VerifyPassword(strongPassword))
		assert.False(t, op.VerifyPassword("carve-Tidal-Lantern-94!"))
	})

	t.Run("authentication", func(t *testing.T) {
		assert.NoError(t, op.Authenticate("maze_operator", strongPassword))
		assert.ErrorIs(t, op.Authenticate("someone", strongPassword), ErrInvalidCredential)
		assert.ErrorIs(t, op.Authenticate("maze_operator", "nope"), ErrInvalidCredential)
	})
}

func TestNewOperatorValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		err      error
	}{
		{name: "short username", username: "op", password: strongPassword, err: ErrUsernameTooShort},
		{name: "long username", username: "operator_with_a_long_name", password: strongPassword, err: ErrUsernameTooLong},
		{name: "username with spaces", username: "maze operator", password: strongPassword, err: ErrInvalidUsername},
		{name: "weak password", username: "operator", password: "password", err: ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOperator(tt.username, tt.password)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
