package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zifaf/infras/jwt"
	"zifaf/internal/domains/auth/model/dto"
	"zifaf/shared/constant"
)

func TestRegisterRequest_ToUserModel(t *testing.T) {
	req := dto.RegisterRequest{
		Email:    "layla@example.com",
		Password: "plain-pass",
		FullName: stringPtr("Layla Haddad"),
		City:     stringPtr("Amman"),
	}

	user := req.ToUserModel("guest", "hashed-pass")

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "layla@example.com", user.Email)
	assert.Equal(t, "hashed-pass", user.Password)
	assert.Equal(t, constant.RoleCustomer, user.Role)
	assert.Equal(t, "Layla Haddad", *user.FullName)
	assert.Equal(t, "Amman", *user.City)
	assert.True(t, user.Active)
	assert.Equal(t, "guest", user.CreatedBy)
}

func TestLoginResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.LoginResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func TestRefreshTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
		ExpiresIn:    900,
	}

	var response dto.RefreshTokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, tokenPair.ExpiresIn, response.ExpiresIn)
}

func stringPtr(s string) *string {
	return &s
}
