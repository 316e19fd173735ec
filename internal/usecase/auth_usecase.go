package usecase

import "context"

// AccessToken is returned to a client application after login.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthUsecase authenticates client applications.
type AuthUsecase interface {
	// Login checks the client credentials and issues a bearer token.
	Login(ctx context.Context, username, password string) (*AccessToken, error)
}
