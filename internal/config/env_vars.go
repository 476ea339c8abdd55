package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	HandleEnvVar      = "BLUESKY_HANDLE"
	AppPasswordEnvVar = "BLUESKY_APP_PASSWORD"
	StoreURLEnvVar    = "REDIS_URL"
	StoreTokenEnvVar  = "REDIS_TOKEN"
	LogLevelEnvVar    = "LOG_LEVEL"

	dotEnvFile = ".env"
)

// EnvVars is the environment bound by cleanenv.
type EnvVars struct {
	Handle      string        `env:"BLUESKY_HANDLE"`
	AppPassword string        `env:"BLUESKY_APP_PASSWORD"`
	ServiceURL  string        `env:"BLUESKY_SERVICE_URL" env-default:"https://bsky.social"`
	ChatProxy   string        `env:"BLUESKY_CHAT_PROXY" env-default:"did:web:api.bsky.chat#bsky_chat"`
	StoreURL    string        `env:"REDIS_URL"`
	StoreToken  string        `env:"REDIS_TOKEN"`
	LogLevel    string        `env:"LOG_LEVEL" env-default:"info"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
}

var _ EnvConfig = EnvVars{}

// LoadEnvVars loads .env (if present) into the process environment and binds it.
func LoadEnvVars() (EnvVars, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return EnvVars{}, fmt.Errorf("config: loading %s: %w", dotEnvFile, err)
	}

	var env EnvVars
	if err := cleanenv.ReadEnv(&env); err != nil {
		return EnvVars{}, fmt.Errorf("config: reading environment: %w", err)
	}
	return env, nil
}

func (e EnvVars) GetHandle() string {
	return strings.TrimSpace(e.Handle)
}

func (e EnvVars) GetAppPassword() string {
	return e.AppPassword
}

func (e EnvVars) GetServiceURL() string {
	return strings.TrimRight(e.ServiceURL, "/")
}

func (e EnvVars) GetChatProxy() string {
	return e.ChatProxy
}

func (e EnvVars) GetStoreURL() string {
	return strings.TrimRight(e.StoreURL, "/")
}

func (e EnvVars) GetStoreToken() string {
	return e.StoreToken
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetHTTPTimeout() time.Duration {
	return e.HTTPTimeout
}

// StoreConfigured reports whether both store settings are present. Without
// them every session lookup is a miss.
func (e EnvVars) StoreConfigured() bool {
	return e.GetStoreURL() != "" && e.GetStoreToken() != ""
}
