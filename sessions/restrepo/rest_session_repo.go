// Package restrepo stores login sessions in a key-value cache that speaks the
// Upstash-style REST protocol:
//
//	GET {base}/get/{key}                   -> {"result": "<value>" | null}
//	GET {base}/setex/{key}/{ttl}/{value}   -> {"result": "OK"}
//
// Both requests are authenticated with a bearer token. The value is the
// JSON-encoded session record, path-escaped into the URL.
package restrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/jrsteele09/go-bsky-dm/sessions"
	"github.com/jrsteele09/go-bsky-dm/token"
)

// maxResponseSize bounds reads of cache responses. A session record is a few
// kilobytes.
const maxResponseSize int64 = 1 << 20

var _ sessions.Repo = (*RestSessionRepo)(nil)

// Config holds the cache location and credentials. An empty BaseURL or Token
// yields a repo that reports ErrStoreUnavailable for every call.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

type RestSessionRepo struct {
	baseURL    string
	httpClient *http.Client
}

type resultResponse struct {
	Result *string `json:"result"`
	Error  string  `json:"error,omitempty"`
}

func New(config Config) *RestSessionRepo {
	if config.BaseURL == "" || config.Token == "" {
		return &RestSessionRepo{}
	}
	return &RestSessionRepo{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: token.HTTPClient(config.HTTPClient, config.Token),
	}
}

// Configured reports whether the repo has somewhere to talk to.
func (r *RestSessionRepo) Configured() bool {
	return r.httpClient != nil
}

func (r *RestSessionRepo) Get(ctx context.Context, key string) (*sessions.SessionData, error) {
	if !r.Configured() {
		return nil, apperrors.ErrStoreUnavailable
	}

	response, err := r.do(ctx, "/get/"+url.PathEscape(key))
	if err != nil {
		return nil, apperrors.Wrapf(err, "restrepo: get %s", key)
	}
	if response.Result == nil || *response.Result == "" {
		return nil, apperrors.ErrSessionNotFound
	}

	var data sessions.SessionData
	if err := json.Unmarshal([]byte(*response.Result), &data); err != nil {
		return nil, fmt.Errorf("restrepo: decoding cached session %s: %w", key, err)
	}
	return &data, nil
}

func (r *RestSessionRepo) Upsert(ctx context.Context, key string, data *sessions.SessionData, ttl time.Duration) error {
	if !r.Configured() {
		return apperrors.ErrStoreUnavailable
	}
	if data == nil {
		return fmt.Errorf("restrepo: nil session for %s: %w", key, apperrors.ErrInvalidRequest)
	}

	seconds := int64(ttl / time.Second)
	if seconds <= 0 {
		return fmt.Errorf("restrepo: ttl %s is shorter than one second: %w", ttl, apperrors.ErrInvalidRequest)
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("restrepo: encoding session: %w", err)
	}

	path := "/setex/" + url.PathEscape(key) + "/" + strconv.FormatInt(seconds, 10) + "/" + url.PathEscape(string(encoded))
	if _, err := r.do(ctx, path); err != nil {
		return apperrors.Wrapf(err, "restrepo: setex %s", key)
	}
	return nil
}

// do issues an authenticated GET. URLs are built by concatenation so the
// already escaped segments are sent as they are. Anything but a 200 with a
// JSON body is reported as ErrStoreUnavailable.
func (r *RestSessionRepo) do(ctx context.Context, path string) (*resultResponse, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	response, err := r.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrStoreUnavailable, err)
	}

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d: %s", apperrors.ErrStoreUnavailable, response.StatusCode, strings.TrimSpace(string(body)))
	}

	var result resultResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", apperrors.ErrStoreUnavailable, err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrStoreUnavailable, result.Error)
	}
	return &result, nil
}
