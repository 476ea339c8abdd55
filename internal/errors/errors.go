package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the session manager, the store adapter and the
// direct message operations.
var (
	// Configuration errors
	ErrConfiguration      = errors.New("configuration error")
	ErrCredentialsMissing = fmt.Errorf("%w: missing BLUESKY_HANDLE or BLUESKY_APP_PASSWORD environment variables", ErrConfiguration)
	ErrInvalidWatermark   = fmt.Errorf("%w: invalid since timestamp", ErrConfiguration)

	// Authentication errors
	ErrRateLimited        = errors.New("rate limited")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Session store errors. These are soft failures: callers log them and
	// carry on as if the store were empty.
	ErrStoreUnavailable = errors.New("session store unavailable")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionUnusable  = errors.New("session record is missing tokens")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}
