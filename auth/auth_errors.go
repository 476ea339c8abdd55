package auth

import (
	"fmt"

	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
)

// rateLimitedErr reports a rate-limit signal seen at stage. It wraps both
// ErrRateLimited and the original cause.
func rateLimitedErr(stage string, cause error) error {
	return fmt.Errorf("%w during %s: cannot authenticate, wait until the rate limit window resets: %w",
		apperrors.ErrRateLimited, stage, cause)
}
