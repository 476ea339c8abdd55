package auth

import (
	"context"

	"github.com/jrsteele09/go-bsky-dm/sessions"
)

// Client is the account-authentication capability. Unlike the session repo,
// its failures are hard failures.
type Client interface {
	// Login performs a fresh password login. Each call spends one of the
	// account's scarce daily logins.
	Login(ctx context.Context, identifier, password string) (*sessions.SessionData, error)

	// VerifySession makes a lightweight authenticated call as session.
	VerifySession(ctx context.Context, session *sessions.SessionData, actor string) error
}

// Repos holds the repository dependencies for the SessionManager.
type Repos struct {
	Sessions sessions.Repo // Best-effort login cache
}
