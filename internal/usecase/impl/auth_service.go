package impl

import (
	"context"
	"crypto/subtle"

	"exposure/config"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/service"
	"exposure/internal/errors"
	"exposure/internal/usecase"

	"go.uber.org/fx"
)

type authService struct {
	clients []config.AuthClient
	hasher  service.PasswordHasher
	tokens  service.TokenService
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Config *config.Config
	Hasher service.PasswordHasher
	Tokens service.TokenService
}

// NewAuthService creates the client login use case.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	var clients []config.AuthClient
	if params.Config.Auth != nil {
		clients = params.Config.Auth.Clients
	}

	return &authService{
		clients: clients,
		hasher:  params.Hasher,
		tokens:  params.Tokens,
	}
}

// Login checks the client credentials and issues a bearer token
func (s *authService) Login(_ context.Context, username, password string) (*usecase.AccessToken, error) {
	client, ok := s.findClient(username)
	if !ok || !s.hasher.Check(password, client.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(client.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AccessToken{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.AccessTokenDuration().Seconds()),
	}, nil
}

func (s *authService) findClient(username string) (config.AuthClient, bool) {
	for _, client := range s.clients {
		if subtle.ConstantTimeCompare([]byte(client.Username), []byte(username)) == 1 {
			return client, true
		}
	}

	return config.AuthClient{}, false
}
