package auth

import (
	"context"
	"time"

	"github.com/jrsteele09/go-bsky-dm/bsky"
	"github.com/jrsteele09/go-bsky-dm/internal/config"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/jrsteele09/go-bsky-dm/internal/utils"
	"github.com/jrsteele09/go-bsky-dm/sessions"
	"github.com/jrsteele09/go-bsky-dm/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SessionManager hands out authenticated sessions while spending as few
// logins as possible. The account may only log in a handful of times per
// rolling day, so a session cached by any earlier run (of either command) is
// preferred over a new login whenever the server still accepts it.
type SessionManager struct {
	repos   Repos                // Repository dependencies
	client  Client               // Login and verification calls
	config  config.SessionConfig // Shared cache key and TTL
	nowTime func() time.Time     // nowTime function (injectable for testing)
	logger  zerolog.Logger
}

// SessionManagerOption defines a function type to modify the SessionManager instance.
type SessionManagerOption func(*SessionManager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) SessionManagerOption {
	return func(sm *SessionManager) {
		sm.nowTime = nowFunc
	}
}

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) SessionManagerOption {
	return func(sm *SessionManager) {
		sm.logger = logger
	}
}

// NewSessionManager initializes a new SessionManager with required dependencies.
func NewSessionManager(repos Repos, client Client, cfg config.SessionConfig, options ...SessionManagerOption) (*SessionManager, error) {
	if repos.Sessions == nil {
		return nil, errors.New("[NewSessionManager] Sessions repo is required")
	}
	if client == nil {
		return nil, errors.New("[NewSessionManager] client is required")
	}
	if cfg == nil {
		return nil, errors.New("[NewSessionManager] session config is required")
	}

	sm := &SessionManager{
		repos:   repos,
		client:  client,
		config:  cfg,
		nowTime: time.Now,
		logger:  log.Logger,
	}
	for _, opt := range options {
		opt(sm)
	}
	return sm, nil
}

// AcquireSession returns a session the server currently accepts.
//
// A cached session that passes verification is returned without logging in.
// A rate-limit signal, from verification or from the login itself, is fatal
// and returned wrapping ErrRateLimited; no further login is attempted. Any
// other verification failure falls through to one fresh login, whose result
// is cached for the configured TTL. Cache failures never fail the call.
func (sm *SessionManager) AcquireSession(ctx context.Context, creds Credentials) (*sessions.SessionData, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	logger := sm.logger.With().Str("identifier", creds.Identifier).Logger()

	if stored := sm.storedSession(ctx, logger); stored != nil {
		reused, err := sm.reuse(ctx, stored, creds, logger)
		if err != nil {
			return nil, err
		}
		if reused {
			return stored, nil
		}
	}

	return sm.login(ctx, creds, logger)
}

// storedSession reads the shared cache entry. Misses, store failures and
// records without tokens all come back as nil.
func (sm *SessionManager) storedSession(ctx context.Context, logger zerolog.Logger) *sessions.SessionData {
	key := sm.config.GetSessionKey()

	stored, err := sm.repos.Sessions.Get(ctx, key)
	switch {
	case apperrors.Is(err, apperrors.ErrSessionNotFound):
		logger.Debug().Str("key", key).Msg("no cached session")
		return nil
	case err != nil:
		logger.Warn().Err(err).Str("key", key).Msg("failed to read cached session")
		return nil
	case !stored.Usable():
		logger.Warn().Err(apperrors.ErrSessionUnusable).Str("key", key).Msg("ignoring cached session")
		return nil
	}
	return stored
}

// reuse verifies stored. It reports true when stored can be used as is, and
// an error only for a rate-limit signal.
func (sm *SessionManager) reuse(ctx context.Context, stored *sessions.SessionData, creds Credentials, logger zerolog.Logger) (bool, error) {
	actor := verificationActor(stored, creds)
	logger = logger.With().Str("did", stored.DID).Str("actor", actor).Logger()

	if claims, err := token.Inspect(stored.AccessJwt); err == nil && !claims.ExpiresAt.IsZero() {
		logger.Info().
			Time("expires_at", claims.ExpiresAt).
			Bool("expired", claims.Expired(sm.nowTime())).
			Msg("attempting to restore cached session")
	} else {
		logger.Info().Msg("attempting to restore cached session")
	}

	err := sm.client.VerifySession(ctx, stored, actor)
	if err == nil {
		logger.Info().Msg("session verification successful, reusing cached session")
		return true, nil
	}
	if bsky.IsRateLimited(err) {
		logger.Error().Err(err).Msg("rate limited while verifying cached session")
		return false, rateLimitedErr("session verification", err)
	}

	logger.Warn().Err(err).Msg("session verification failed, will try fresh login")
	return false, nil
}

// login spends one login and caches the result.
func (sm *SessionManager) login(ctx context.Context, creds Credentials, logger zerolog.Logger) (*sessions.SessionData, error) {
	logger.Info().Msg("performing fresh login")

	session, err := sm.client.Login(ctx, creds.Identifier, creds.Password)
	if err != nil {
		if bsky.IsRateLimited(err) {
			logger.Error().Err(err).Msg("rate limited on login")
			return nil, rateLimitedErr("login", err)
		}
		return nil, errors.Wrap(err, "[SessionManager.AcquireSession] login")
	}

	logger.Info().
		Str("did", session.DID).
		Bool("active", session.Active).
		Str("status", utils.ValueOr(session.Status, "active")).
		Bool("email_confirmed", utils.Value(session.EmailConfirmed)).
		Msg("login successful")

	key := sm.config.GetSessionKey()
	ttl := sm.config.GetSessionTTL()
	if err := sm.repos.Sessions.Upsert(ctx, key, session, ttl); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to cache session, continuing")
	} else {
		logger.Info().Str("key", key).Dur("ttl", ttl).Str("did", session.DID).Msg("session cached")
	}
	return session, nil
}

// verificationActor is the account whose profile is fetched to prove the
// stored session works: its own handle, then DID, then the login identifier.
func verificationActor(stored *sessions.SessionData, creds Credentials) string {
	switch {
	case stored.Handle != "":
		return stored.Handle
	case stored.DID != "":
		return stored.DID
	default:
		return creds.Identifier
	}
}
