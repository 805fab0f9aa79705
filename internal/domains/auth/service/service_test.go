package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"zifaf/config"
	"zifaf/infras/jwt"
	jwtMocks "zifaf/infras/jwt/mocks"
	"zifaf/infras/otel/mocks"
	"zifaf/internal/domains/auth/model/dto"
	"zifaf/internal/domains/auth/service"
	userMocks "zifaf/internal/domains/user/mocks"
	userModel "zifaf/internal/domains/user/model"
	"zifaf/shared/constant"
	"zifaf/shared/failure"
	"zifaf/shared/password"
)

func activeUser(t *testing.T, plaintext string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plaintext)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "layla@example.com",
		Password: hashed,
		Role:     constant.RoleCustomer,
		Active:   true,
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	req := dto.RegisterRequest{
		Email:    "layla@example.com",
		Password: "s3cret-pass",
	}

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) error {
				assert.Equal(t, "layla@example.com", user.Email)
				assert.Equal(t, constant.RoleCustomer, user.Role)
				assert.True(t, user.Active)
				assert.NoError(t, password.Verify("s3cret-pass", user.Password))

				return nil
			})

		err := svc.Register(context.Background(), req)

		assert.NoError(t, err)
	})

	t.Run("email already taken", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		err := svc.Register(context.Background(), req)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "email already registered")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	user := activeUser(t, "s3cret-pass")

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		mockJWT.EXPECT().
			GenerateTokenPair(user.ID, user.Email, user.Role).
			Return(&jwt.TokenPair{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				ExpiresIn:    900,
			}, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    user.Email,
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Equal(t, "refresh-token", res.RefreshToken)
		assert.Equal(t, int64(900), res.ExpiresIn)
	})

	t.Run("wrong password yields the same generic error", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    user.Email,
			Password: "wrong-pass",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("unknown email yields the same generic error", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(userModel.User{}, failure.NotFound("user not found"))

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "s3cret-pass",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid email or password")
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		inactive := user
		inactive.Active = false

		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(inactive, nil)

		_, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    user.Email,
			Password: "s3cret-pass",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "deactivated")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("success", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens(gomock.Any(), "old-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
				ExpiresIn:    900,
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "old-refresh-token",
		})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens(gomock.Any(), "tampered").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{
			RefreshToken: "tampered",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid refresh token")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	user := activeUser(t, "old-pass-123")

	t.Run("success", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		mockUserRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hashed, ok := fields["password"].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("new-pass-456", hashed))

				return nil
			})

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "old-pass-123",
			NewPassword:     "new-pass-456",
		}, user.ID)

		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(user, nil)

		err := svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{
			CurrentPassword: "not-the-old-pass",
			NewPassword:     "new-pass-456",
		}, user.ID)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "current password is incorrect")
	})
}
