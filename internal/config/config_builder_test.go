package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_DefaultsWithSecretKey(t *testing.T) {
	// Arrange
	t.Setenv("SECRET_KEY", "super-secret")

	// Act
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(nil).
		withJSON().
		build()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "super-secret", cfg.App.TokenSignKey)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, DefaultPasswordHashCost, cfg.App.PasswordHashCost)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
}

func TestConfigBuilder_MissingSignKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("APP_TOKEN_SIGN_KEY", "")

	cfg, err := newConfigBuilder().withDefaults().withEnv().withFlags(nil).build()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
	assert.Nil(t, cfg)
}

func TestConfigBuilder_Priority(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
		"app": {"token_issuer": "from-json"},
		"server": {"request_timeout": "5s"}
	}`), 0o600))

	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("APP_TOKEN_ISSUER", "from-env")
	t.Setenv("APP_TOKEN_DURATION", "2h")
	t.Setenv("SERVER_ADDRESS", "localhost:7000")

	// Act
	cfg, err := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags([]string{"-a", "localhost:7001", "-token-sign-key", "flag-secret", "-c", p}).
		withJSON().
		build()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "flag-secret", cfg.App.TokenSignKey, "flag beats SECRET_KEY")
	assert.Equal(t, "from-json", cfg.App.TokenIssuer, "json beats env")
	assert.Equal(t, 2*time.Hour, cfg.App.TokenDuration, "env beats defaults")
	assert.Equal(t, "localhost:7001", cfg.Server.HTTPAddress, "flag beats env")
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, p, cfg.JSONFilePath)
}

func TestConfigBuilder_AccumulatesErrors(t *testing.T) {
	_, err := newConfigBuilder().
		withDefaults().
		withFlags([]string{"-a", "not-an-address"}).
		withFlags([]string{"-unknown-flag"}).
		build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error occured during building config")
}

func TestConfigBuilder_JSONFileMissing(t *testing.T) {
	t.Setenv("SECRET_KEY", "k")

	_, err := newConfigBuilder().
		withDefaults().
		withFlags([]string{"-config", filepath.Join(t.TempDir(), "absent.json")}).
		withJSON().
		build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestValidate(t *testing.T) {
	valid := func() *StructuredConfig {
		cfg := defaultConfig()
		cfg.App.TokenSignKey = "k"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{
			name:   "defaults with key",
			mutate: func(cfg *StructuredConfig) {},
		},
		{
			name:    "zero token duration",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenDuration = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "hash cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 1 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "hash cost too high",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 40 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.Driver = "postgres" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "sqlite in memory",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Driver = StorageDriverSQLite
				cfg.Storage.DB.DSN = ":memory:"
			},
		},
		{
			name: "sqlite on disk is rejected",
			mutate: func(cfg *StructuredConfig) {
				cfg.Storage.Driver = StorageDriverSQLite
				cfg.Storage.DB.DSN = "file:/var/lib/accounts.db"
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty http address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetClientConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("ACCOUNTCTL_SERVER", "")
		os.Unsetenv("ACCOUNTCTL_SERVER")

		cfg, err := GetClientConfig()

		require.NoError(t, err)
		assert.Equal(t, DefaultClientServerURL, cfg.Adapter.ServerURL)
		assert.Equal(t, DefaultClientTimeout, cfg.Adapter.RequestTimeout)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("ACCOUNTCTL_SERVER", "http://accounts:9000")
		t.Setenv("ACCOUNTCTL_TIMEOUT", "3s")
		t.Setenv("ACCOUNTCTL_TOKEN", "tok")

		cfg, err := GetClientConfig()

		require.NoError(t, err)
		assert.Equal(t, "http://accounts:9000", cfg.Adapter.ServerURL)
		assert.Equal(t, 3*time.Second, cfg.Adapter.RequestTimeout)
		assert.Equal(t, "tok", cfg.Adapter.Token)
	})

	t.Run("bad timeout", func(t *testing.T) {
		t.Setenv("ACCOUNTCTL_TIMEOUT", "soon")

		_, err := GetClientConfig()

		assert.Error(t, err)
	})
}
