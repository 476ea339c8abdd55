package token

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const bearerType = "Bearer"

// Claims is what can be read from an access token without its signing key.
// The server issues and verifies the token; a client only inspects it.
type Claims struct {
	Subject   string
	Scope     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's exp claim is at or before now. Tokens
// without an exp claim never report expired.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type accessClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Inspect parses rawToken without verifying its signature.
func Inspect(rawToken string) (*Claims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, errors.New("[token.Inspect] empty token")
	}

	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, &claims); err != nil {
		return nil, errors.Wrap(err, "[token.Inspect] ParseUnverified")
	}

	result := &Claims{
		Subject: claims.Subject,
		Scope:   claims.Scope,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}

// Source returns a token source that always yields accessToken as a bearer
// token. The expiry is filled in from the token's claims when it is a JWT.
func Source(accessToken string) oauth2.TokenSource {
	tok := &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   bearerType,
	}
	if claims, err := Inspect(accessToken); err == nil {
		tok.Expiry = claims.ExpiresAt
	}
	return oauth2.StaticTokenSource(tok)
}

// HTTPClient wraps base so every request carries accessToken in its
// Authorization header. base's transport and timeout are kept.
func HTTPClient(base *http.Client, accessToken string) *http.Client {
	if base == nil {
		base = http.DefaultClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   base.Transport,
			Source: Source(accessToken),
		},
		CheckRedirect: base.CheckRedirect,
		Jar:           base.Jar,
		Timeout:       base.Timeout,
	}
}
