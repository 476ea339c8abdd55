package auth_test

import (
	"testing"

	"github.com/jrsteele09/go-bsky-dm/auth"
	"github.com/jrsteele09/go-bsky-dm/internal/config"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestCredentialsFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     config.EnvVars
		want    auth.Credentials
		wantErr error
	}{
		{
			name: "both present",
			env:  config.EnvVars{Handle: " bot.bsky.social ", AppPassword: "secret"},
			want: auth.Credentials{Identifier: "bot.bsky.social", Password: "secret"},
		},
		{
			name:    "missing handle",
			env:     config.EnvVars{AppPassword: "secret"},
			wantErr: apperrors.ErrCredentialsMissing,
		},
		{
			name:    "missing password",
			env:     config.EnvVars{Handle: "bot.bsky.social"},
			wantErr: apperrors.ErrCredentialsMissing,
		},
		{
			name:    "blank handle",
			env:     config.EnvVars{Handle: "   ", AppPassword: "secret"},
			wantErr: apperrors.ErrCredentialsMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := auth.CredentialsFromConfig(config.New(tt.env))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, apperrors.ErrConfiguration)
				require.Contains(t, err.Error(), "BLUESKY_HANDLE")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, creds)
		})
	}
}
