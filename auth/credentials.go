package auth

import (
	"strings"

	"github.com/jrsteele09/go-bsky-dm/internal/config"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
)

// Credentials is the account handle and app password used for a fresh login.
type Credentials struct {
	Identifier string
	Password   string
}

// CredentialsFromConfig reads the credentials from cfg, returning
// ErrCredentialsMissing when either value is absent.
func CredentialsFromConfig(cfg config.EnvConfig) (Credentials, error) {
	creds := Credentials{
		Identifier: cfg.GetHandle(),
		Password:   cfg.GetAppPassword(),
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Validate checks both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Identifier) == "" || c.Password == "" {
		return apperrors.ErrCredentialsMissing
	}
	return nil
}
