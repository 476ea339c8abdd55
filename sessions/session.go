package sessions

import (
	"encoding/json"
	"fmt"
)

// SessionData is one authenticated login as it is cached between runs.
//
// Records are written with snake_case keys. Older producers, and the
// createSession response itself, use camelCase, so decoding accepts either
// spelling per field in a fixed order (see UnmarshalJSON).
type SessionData struct {
	AccessJwt      string  `json:"access_jwt"`      // Bearer token for API calls
	RefreshJwt     string  `json:"refresh_jwt"`     // Token for the refresh endpoint
	Handle         string  `json:"handle"`          // Account handle, e.g. "bot.bsky.social"
	DID            string  `json:"did"`             // Stable account identifier
	Email          *string `json:"email"`           // Optional
	EmailConfirmed *bool   `json:"email_confirmed"` // Optional
	Active         bool    `json:"active"`          // Defaults to true when absent
	Status         *string `json:"status,omitempty"`

	// DIDDoc is read when present but never written back; it is large and
	// the cache value travels in a URL path segment.
	DIDDoc json.RawMessage `json:"-"`
}

// Accepted key spellings per field, in lookup order.
var (
	accessJwtKeys      = []string{"access_jwt", "accessJwt"}
	refreshJwtKeys     = []string{"refresh_jwt", "refreshJwt"}
	handleKeys         = []string{"handle"}
	didKeys            = []string{"did"}
	emailKeys          = []string{"email"}
	emailConfirmedKeys = []string{"email_confirmed", "emailConfirmed"}
	activeKeys         = []string{"active"}
	statusKeys         = []string{"status"}
	didDocKeys         = []string{"did_doc", "didDoc"}
)

// Usable reports whether the record carries both tokens.
func (s *SessionData) Usable() bool {
	return s != nil && s.AccessJwt != "" && s.RefreshJwt != ""
}

// UnmarshalJSON decodes a record written under either naming convention.
// For each field the first accepted key holding a non-null value wins.
func (s *SessionData) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("sessions: decoding record: %w", err)
	}

	decoded := SessionData{Active: true}
	targets := []struct {
		keys []string
		dst  any
	}{
		{accessJwtKeys, &decoded.AccessJwt},
		{refreshJwtKeys, &decoded.RefreshJwt},
		{handleKeys, &decoded.Handle},
		{didKeys, &decoded.DID},
		{emailKeys, &decoded.Email},
		{emailConfirmedKeys, &decoded.EmailConfirmed},
		{activeKeys, &decoded.Active},
		{statusKeys, &decoded.Status},
	}
	for _, target := range targets {
		key, raw, ok := lookup(fields, target.keys)
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target.dst); err != nil {
			return fmt.Errorf("sessions: decoding %q: %w", key, err)
		}
	}
	if _, raw, ok := lookup(fields, didDocKeys); ok {
		decoded.DIDDoc = append(json.RawMessage(nil), raw...)
	}

	*s = decoded
	return nil
}

func lookup(fields map[string]json.RawMessage, keys []string) (string, json.RawMessage, bool) {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		return key, raw, true
	}
	return "", nil, false
}
