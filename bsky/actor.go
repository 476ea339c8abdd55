package bsky

import (
	"context"
	"fmt"

	appbsky "github.com/bluesky-social/indigo/api/bsky"
	"github.com/jrsteele09/go-bsky-dm/internal/utils"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

// GetProfile fetches app.bsky.actor.getProfile for actor, acting as session.
func (c *Client) GetProfile(ctx context.Context, session *sessions.SessionData, actor string) (*ProfileView, error) {
	profile, err := appbsky.ActorGetProfile(ctx, c.xrpcClient(session, false), actor)
	if err != nil {
		return nil, fmt.Errorf("bsky: get profile %s: %w", actor, err)
	}
	return &ProfileView{
		DID:         profile.Did,
		Handle:      profile.Handle,
		DisplayName: utils.Value(profile.DisplayName),
	}, nil
}

// VerifySession checks that session is still accepted by making the
// cheapest authenticated read there is.
func (c *Client) VerifySession(ctx context.Context, session *sessions.SessionData, actor string) error {
	_, err := c.GetProfile(ctx, session, actor)
	return err
}
