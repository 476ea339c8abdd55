package cli

import (
	"net/http"

	"github.com/jrsteele09/go-bsky-dm/auth"
	"github.com/jrsteele09/go-bsky-dm/bsky"
	"github.com/jrsteele09/go-bsky-dm/internal/config"
	"github.com/jrsteele09/go-bsky-dm/sessions/restrepo"
	"github.com/rs/zerolog/log"
)

// Deps is everything a command needs to talk to the network.
type Deps struct {
	Config   config.Config
	Creds    auth.Credentials
	Client   *bsky.Client
	Sessions *auth.SessionManager
}

// NewDeps validates the credentials in cfg and wires the store, the XRPC
// client and the session manager. A store that is not configured is allowed;
// every session then comes from a fresh login.
func NewDeps(cfg config.Config) (*Deps, error) {
	creds, err := auth.CredentialsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.GetHTTPTimeout()}

	client, err := bsky.NewClient(bsky.ClientConfig{
		ServiceURL: cfg.GetServiceURL(),
		ChatProxy:  cfg.GetChatProxy(),
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.StoreConfigured() {
		log.Warn().Msg("REDIS_URL or REDIS_TOKEN not set, sessions will not be reused")
	}
	store := restrepo.New(restrepo.Config{
		BaseURL:    cfg.GetStoreURL(),
		Token:      cfg.GetStoreToken(),
		HTTPClient: httpClient,
	})

	manager, err := auth.NewSessionManager(auth.Repos{Sessions: store}, client, cfg)
	if err != nil {
		return nil, err
	}

	return &Deps{
		Config:   cfg,
		Creds:    creds,
		Client:   client,
		Sessions: manager,
	}, nil
}
