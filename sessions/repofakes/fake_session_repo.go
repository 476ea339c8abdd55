package fakesessionrepo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// FakeSessionRepo is an in-memory sessions.Repo. Records are kept as JSON so
// reads go through the same decoding as the REST store.
type FakeSessionRepo struct {
	entries map[string]entry
	lock    sync.RWMutex

	// GetErr and UpsertErr, when set, are returned instead of touching the map.
	GetErr    error
	UpsertErr error

	// NowFunc drives expiry. Defaults to time.Now.
	NowFunc func() time.Time

	Gets    int
	Upserts int
	LastTTL time.Duration
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		entries: make(map[string]entry),
		NowFunc: time.Now,
	}
}

func (sr *FakeSessionRepo) Get(_ context.Context, key string) (*sessions.SessionData, error) {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.Gets++
	if sr.GetErr != nil {
		return nil, sr.GetErr
	}

	e, ok := sr.entries[key]
	if !ok || !sr.NowFunc().Before(e.expiresAt) {
		delete(sr.entries, key)
		return nil, apperrors.ErrSessionNotFound
	}

	var data sessions.SessionData
	if err := json.Unmarshal(e.value, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (sr *FakeSessionRepo) Upsert(_ context.Context, key string, data *sessions.SessionData, ttl time.Duration) error {
	sr.lock.Lock()
	defer sr.lock.Unlock()

	sr.Upserts++
	sr.LastTTL = ttl
	if sr.UpsertErr != nil {
		return sr.UpsertErr
	}

	value, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sr.entries[key] = entry{value: value, expiresAt: sr.NowFunc().Add(ttl)}
	return nil
}

// SeedRaw stores a raw JSON value under key, bypassing the Upsert counters.
func (sr *FakeSessionRepo) SeedRaw(key, value string, ttl time.Duration) {
	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.entries[key] = entry{value: []byte(value), expiresAt: sr.NowFunc().Add(ttl)}
}

// Stored returns the record held under key without counting as a Get.
func (sr *FakeSessionRepo) Stored(key string) (*sessions.SessionData, bool) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	e, ok := sr.entries[key]
	if !ok {
		return nil, false
	}
	var data sessions.SessionData
	if err := json.Unmarshal(e.value, &data); err != nil {
		return nil, false
	}
	return &data, true
}
