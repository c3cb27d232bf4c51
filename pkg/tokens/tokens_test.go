package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Generate(42, "employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "employee", claims.Role)
}

func TestParseWrongSecret(t *testing.T) {
	manager := NewManager("secret-a", time.Hour)
	other := NewManager("secret-b", time.Hour)

	token, err := manager.Generate(1, "client")
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Generate(1, "client")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	_, err := manager.Parse("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
