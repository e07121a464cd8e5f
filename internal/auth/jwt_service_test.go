package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(1, "admin", "master")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "master", claims.Role)
}

func TestJWTService_RefreshTokenCarriesID(t *testing.T) {
	service := NewJWTService("test-secret")

	tokenID, token, err := service.GenerateRefreshToken(2, "admin")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	extracted, err := service.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateAccessToken(1, "admin", "admin")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_AccessTokenHasNoID(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateAccessToken(1, "admin", "admin")
	assert.NoError(t, err)

	// Only refresh tokens carry a JTI, so access tokens cannot be replayed
	// through the refresh endpoint.
	_, err = service.ExtractTokenID(token)
	assert.Error(t, err)
}
