package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, svc.VerifyPassword(hash, "correct-horse"))
	assert.False(t, svc.VerifyPassword(hash, "wrong-horse"))
}

func TestPasswordService_HashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.HashPassword("same-password")
	require.NoError(t, err)
	second, err := svc.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordService_RejectsShortPassword(t *testing.T) {
	svc := NewPasswordService()

	_, err := svc.HashPassword("abc")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestPasswordService_GenerateSecureToken(t *testing.T) {
	svc := NewPasswordService()

	first, err := svc.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.Len(t, first, 64) // hex encoding doubles the byte length

	second, err := svc.GenerateSecureToken(32)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
