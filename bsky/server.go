package bsky

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bluesky-social/indigo/api/atproto"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/jrsteele09/go-bsky-dm/internal/utils"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

const defaultHandleSuffix = ".bsky.social"

// NormalizeIdentifier turns a bare username into a full handle. DIDs,
// emails and dotted handles are returned unchanged.
func NormalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.Contains(identifier, ".") || strings.HasPrefix(identifier, "did:") {
		return identifier
	}
	return identifier + defaultHandleSuffix
}

// Login creates a new session with com.atproto.server.createSession. Every
// call counts against the account's daily login allowance.
func (c *Client) Login(ctx context.Context, identifier, password string) (*sessions.SessionData, error) {
	if identifier == "" {
		return nil, fmt.Errorf("bsky: identifier is required for login")
	}
	if password == "" {
		return nil, fmt.Errorf("bsky: password is required for login")
	}

	out, err := atproto.ServerCreateSession(ctx, c.xrpcClient(nil, false), &atproto.ServerCreateSession_Input{
		Identifier: NormalizeIdentifier(identifier),
		Password:   password,
	})
	if err != nil {
		if isAuthFailure(err) && !IsRateLimited(err) {
			return nil, fmt.Errorf("bsky: %w: check BLUESKY_HANDLE (e.g. 'username.bsky.social') and BLUESKY_APP_PASSWORD: %v",
				apperrors.ErrInvalidCredentials, err)
		}
		return nil, fmt.Errorf("bsky: login failed: %w", err)
	}

	session := sessionFromOutput(out)
	if !session.Usable() {
		return nil, fmt.Errorf("bsky: login response for %s carried no tokens", identifier)
	}
	return session, nil
}

func sessionFromOutput(out *atproto.ServerCreateSession_Output) *sessions.SessionData {
	session := &sessions.SessionData{
		AccessJwt:      out.AccessJwt,
		RefreshJwt:     out.RefreshJwt,
		Handle:         out.Handle,
		DID:            out.Did,
		Email:          out.Email,
		EmailConfirmed: out.EmailConfirmed,
		Active:         utils.ValueOr(out.Active, true),
		Status:         out.Status,
	}
	if out.DidDoc != nil {
		if doc, err := json.Marshal(*out.DidDoc); err == nil {
			session.DIDDoc = doc
		}
	}
	return session
}
