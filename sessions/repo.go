package sessions

import (
	"context"
	"time"
)

// Repo is the best-effort cache of login sessions. Any error it returns is a
// soft failure: callers log it and behave as if nothing was cached.
type Repo interface {
	// Get retrieves the record stored under key. A missing or expired key
	// returns errors.ErrSessionNotFound.
	Get(ctx context.Context, key string) (*SessionData, error)

	// Upsert writes data under key, replacing any previous record. The
	// record expires after ttl.
	Upsert(ctx context.Context, key string, data *SessionData, ttl time.Duration) error
}
