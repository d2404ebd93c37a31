package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateToken(t *testing.T) {
	// Arrange
	Init("unit-test-secret")

	// Act
	token, err := GenerateToken(42, "editor@example.com", "editor")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ValidateToken(token)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "editor@example.com", claims.Email)
	assert.Equal(t, "editor", claims.Role)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	// Arrange
	Init("secret-one")
	token, err := GenerateToken(1, "admin@example.com", "admin")
	assert.NoError(t, err)

	Init("secret-two")

	// Act
	claims, err := ValidateToken(token)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Garbage(t *testing.T) {
	Init("unit-test-secret")

	claims, err := ValidateToken("not-a-token")

	assert.Error(t, err)
	assert.Nil(t, claims)
}
