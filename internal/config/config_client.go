package config

import (
	"fmt"
	"time"
)

// Defaults of the command-line client.
const (
	DefaultClientServerURL = "http://localhost:3000"
	DefaultClientTimeout   = 10 * time.Second
)

// ClientConfig is the configuration of the accountctl command-line client.
type ClientConfig struct {
	Adapter Adapter `envPrefix:"ACCOUNTCTL_"`
}

// Adapter holds settings of the HTTP adapter used by the client.
type Adapter struct {
	// ServerURL is the base URL of the accounts server.
	// Env: ACCOUNTCTL_SERVER
	ServerURL string `env:"SERVER"`

	// RequestTimeout bounds every HTTP request made by the client.
	// Env: ACCOUNTCTL_TIMEOUT
	RequestTimeout time.Duration `env:"TIMEOUT"`

	// Token is the bearer token sent on authenticated calls when the
	// -token flag is not given.
	// Env: ACCOUNTCTL_TOKEN
	Token string `env:"TOKEN"`
}

// GetClientConfig loads the client configuration from defaults and the
// environment. Flags are handled by each client subcommand.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		Adapter: Adapter{
			ServerURL:      DefaultClientServerURL,
			RequestTimeout: DefaultClientTimeout,
		},
	}

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error loading client config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
