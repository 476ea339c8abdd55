package config

import "time"

type Config interface {
	EnvConfig
	SessionConfig
}

type EnvConfig interface {
	GetHandle() string
	GetAppPassword() string
	GetServiceURL() string
	GetChatProxy() string
	GetStoreURL() string
	GetStoreToken() string
	GetLogLevel() string
	GetHTTPTimeout() time.Duration
	StoreConfigured() bool
}

type mainConfig struct {
	EnvVars
	Session
}

// Load reads a .env file from the working directory when one exists and then
// binds the process environment. Missing credentials are not an error here;
// they are reported when a command asks for them.
func Load() (Config, error) {
	env, err := LoadEnvVars()
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: env}, nil
}

// New builds a Config from already populated environment values.
func New(env EnvVars) Config {
	return mainConfig{EnvVars: env}
}
