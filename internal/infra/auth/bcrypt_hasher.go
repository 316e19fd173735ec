package auth

import (
	"exposure/config"
	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher builds the hasher used for client logins. Every client in
// auth.clients must carry a well-formed bcrypt hash, otherwise startup fails
// instead of the client being silently locked out.
func NewBcryptHasher(cfg *config.Config) (service.PasswordHasher, error) {
	h := &bcryptHasher{cost: bcrypt.DefaultCost}
	if cfg.Auth == nil {
		return h, nil
	}

	if c := cfg.Auth.BcryptCost; c != 0 {
		if c < bcrypt.MinCost || c > bcrypt.MaxCost {
			return nil, errors.Errorf("auth.bcryptCost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c)
		}
		h.cost = c
	}

	for _, client := range cfg.Auth.Clients {
		if _, err := bcrypt.Cost([]byte(client.PasswordHash)); err != nil {
			return nil, errors.Wrapf(err, "auth client %q has an unusable passwordHash", client.Username)
		}
	}

	return h, nil
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}

	return string(hashed), nil
}

func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
