// Package bsky adapts the indigo XRPC client to the parts of the Bluesky API
// a direct-message bot needs: password login, profile lookup and the chat
// service's conversation endpoints.
//
// [Client] is stateless apart from the service URL and HTTP transport. Calls
// that need authentication take the *sessions.SessionData to act as; its
// tokens are handed to a per-call xrpc.Client. Chat calls are routed through
// the PDS to the chat service with the atproto-proxy header.
//
// Server failures come back as *xrpc.Error. [IsRateLimited] classifies the
// "too many requests" family of failures.
package bsky

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bluesky-social/indigo/xrpc"
	"github.com/jrsteele09/go-bsky-dm/internal/utils"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

const (
	DefaultServiceURL = "https://bsky.social"
	DefaultChatProxy  = "did:web:api.bsky.chat#bsky_chat"

	proxyHeader = "atproto-proxy"
	userAgent   = "go-bsky-dm"
)

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// ServiceURL is the PDS base URL. Defaults to DefaultServiceURL.
	ServiceURL string
	// ChatProxy is the service DID chat requests are proxied to. Defaults to
	// DefaultChatProxy.
	ChatProxy string
	// HTTPClient is used for all requests. If nil, http.DefaultClient is used;
	// indigo's own default retries, and a login must never be retried.
	HTTPClient *http.Client
}

// Client talks XRPC to one PDS.
type Client struct {
	host       string
	chatProxy  string
	httpClient *http.Client
}

// NewClient creates a new Client.
func NewClient(config ClientConfig) (*Client, error) {
	serviceURL := config.ServiceURL
	if serviceURL == "" {
		serviceURL = DefaultServiceURL
	}
	parsed, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("bsky: invalid ServiceURL %q: %w", serviceURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("bsky: ServiceURL %q must be absolute", serviceURL)
	}

	chatProxy := config.ChatProxy
	if chatProxy == "" {
		chatProxy = DefaultChatProxy
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		host:       strings.TrimRight(serviceURL, "/"),
		chatProxy:  chatProxy,
		httpClient: httpClient,
	}, nil
}

// xrpcClient builds the indigo client for one call. A nil session gives an
// unauthenticated client; chat adds the proxy header.
func (c *Client) xrpcClient(session *sessions.SessionData, chat bool) *xrpc.Client {
	client := &xrpc.Client{
		Client:    c.httpClient,
		Host:      c.host,
		UserAgent: utils.Ptr(userAgent),
	}
	if session != nil {
		client.Auth = &xrpc.AuthInfo{
			AccessJwt:  session.AccessJwt,
			RefreshJwt: session.RefreshJwt,
			Handle:     session.Handle,
			Did:        session.DID,
		}
	}
	if chat {
		client.Headers = map[string]string{proxyHeader: c.chatProxy}
	}
	return client
}
