package restrepo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/jrsteele09/go-bsky-dm/sessions"
	"github.com/jrsteele09/go-bsky-dm/sessions/restrepo"
	"github.com/stretchr/testify/require"
)

const (
	testToken = "cache-token"
	testKey   = "bluesky:session:dm_poll"
)

// fakeCache is a minimal REST key-value server.
type fakeCache struct {
	t      *testing.T
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]string
	status int
}

func newFakeCache(t *testing.T) (*fakeCache, *httptest.Server) {
	t.Helper()
	cache := &fakeCache{t: t, values: map[string]string{}, ttls: map[string]string{}, status: http.StatusOK}
	server := httptest.NewServer(cache)
	t.Cleanup(server.Close)
	return cache, server
}

func (c *fakeCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
		return
	}
	if c.status != http.StatusOK {
		w.WriteHeader(c.status)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.EscapedPath(), "/"), "/")
	key, err := url.PathUnescape(parts[1])
	require.NoError(c.t, err)

	switch parts[0] {
	case "get":
		value, ok := c.values[key]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"result": nil})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"result": value})
	case "setex":
		require.Len(c.t, parts, 4)
		value, err := url.PathUnescape(parts[3])
		require.NoError(c.t, err)
		c.values[key] = value
		c.ttls[key] = parts[2]
		_ = json.NewEncoder(w).Encode(map[string]any{"result": "OK"})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRestSessionRepo_UpsertThenGet(t *testing.T) {
	cache, server := newFakeCache(t)
	repo := restrepo.New(restrepo.Config{BaseURL: server.URL + "/", Token: testToken})
	require.True(t, repo.Configured())

	data := &sessions.SessionData{
		AccessJwt:  "access",
		RefreshJwt: "refresh",
		Handle:     "bot.bsky.social",
		DID:        "did:plc:bot",
		Active:     true,
	}
	require.NoError(t, repo.Upsert(context.Background(), testKey, data, 24*time.Hour))

	require.Equal(t, "86400", cache.ttls[testKey])
	require.Contains(t, cache.values[testKey], `"access_jwt":"access"`)

	got, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRestSessionRepo_GetCamelCaseRecord(t *testing.T) {
	cache, server := newFakeCache(t)
	cache.values[testKey] = `{"accessJwt":"a","refreshJwt":"r","handle":"bot.bsky.social","did":"did:plc:bot"}`

	repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})
	got, err := repo.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.Equal(t, "a", got.AccessJwt)
	require.Equal(t, "r", got.RefreshJwt)
	require.True(t, got.Active)
}

func TestRestSessionRepo_Miss(t *testing.T) {
	_, server := newFakeCache(t)
	repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})

	_, err := repo.Get(context.Background(), testKey)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestRestSessionRepo_Failures(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		repo := restrepo.New(restrepo.Config{BaseURL: "https://cache.example.com"})
		require.False(t, repo.Configured())

		_, err := repo.Get(context.Background(), testKey)
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
		require.ErrorIs(t, repo.Upsert(context.Background(), testKey, &sessions.SessionData{}, time.Hour), apperrors.ErrStoreUnavailable)
	})

	t.Run("server error", func(t *testing.T) {
		cache, server := newFakeCache(t)
		cache.status = http.StatusInternalServerError
		repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})

		_, err := repo.Get(context.Background(), testKey)
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
		require.ErrorIs(t, repo.Upsert(context.Background(), testKey, &sessions.SessionData{}, time.Hour), apperrors.ErrStoreUnavailable)
	})

	t.Run("wrong token", func(t *testing.T) {
		_, server := newFakeCache(t)
		repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: "wrong"})

		_, err := repo.Get(context.Background(), testKey)
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
		require.Contains(t, err.Error(), "401")
	})

	t.Run("unreachable", func(t *testing.T) {
		_, server := newFakeCache(t)
		server.Close()
		repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})

		_, err := repo.Get(context.Background(), testKey)
		require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	})

	t.Run("corrupt record", func(t *testing.T) {
		cache, server := newFakeCache(t)
		cache.values[testKey] = "{not json"
		repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})

		_, err := repo.Get(context.Background(), testKey)
		require.Error(t, err)
		require.Contains(t, err.Error(), "decoding cached session")
	})

	t.Run("sub-second ttl", func(t *testing.T) {
		_, server := newFakeCache(t)
		repo := restrepo.New(restrepo.Config{BaseURL: server.URL, Token: testToken})

		err := repo.Upsert(context.Background(), testKey, &sessions.SessionData{}, time.Millisecond)
		require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}
