package impl

import (
	"context"
	"testing"
	"time"

	"exposure/config"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/errors"
	mockSvc "exposure/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			Enabled: true,
			Clients: []config.AuthClient{{Username: "myNetapp", PasswordHash: "$2a$hash"}},
		},
	}
}

func TestAuthService_Login(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenService(t)
	svc := NewAuthService(AuthServiceParams{Config: authConfig(), Hasher: hasher, Tokens: tokens})

	hasher.EXPECT().Check("pass", "$2a$hash").Return(true)
	tokens.EXPECT().GenerateAccessToken("myNetapp").Return("signed-token", nil)
	tokens.EXPECT().AccessTokenDuration().Return(time.Hour)

	token, err := svc.Login(context.Background(), "myNetapp", "pass")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)
	assert.Equal(t, int64(3600), token.ExpiresIn)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenService(t)
	svc := NewAuthService(AuthServiceParams{Config: authConfig(), Hasher: hasher, Tokens: tokens})

	hasher.EXPECT().Check("nope", "$2a$hash").Return(false)

	_, err := svc.Login(context.Background(), "myNetapp", "nope")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownClient(t *testing.T) {
	svc := NewAuthService(AuthServiceParams{
		Config: authConfig(),
		Hasher: mockSvc.NewMockPasswordHasher(t),
		Tokens: mockSvc.NewMockTokenService(t),
	})

	_, err := svc.Login(context.Background(), "stranger", "pass")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_NoAuthSection(t *testing.T) {
	svc := NewAuthService(AuthServiceParams{
		Config: &config.Config{},
		Hasher: mockSvc.NewMockPasswordHasher(t),
		Tokens: mockSvc.NewMockTokenService(t),
	})

	_, err := svc.Login(context.Background(), "myNetapp", "pass")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_SigningFailure(t *testing.T) {
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenService(t)
	svc := NewAuthService(AuthServiceParams{Config: authConfig(), Hasher: hasher, Tokens: tokens})

	hasher.EXPECT().Check("pass", "$2a$hash").Return(true)
	tokens.EXPECT().GenerateAccessToken("myNetapp").Return("", errors.New("boom"))

	_, err := svc.Login(context.Background(), "myNetapp", "pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to generate access token")
}
