package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "LEDGER"

// History backends.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
)

const (
	keyFailurePolicy       = "failure_policy"
	keyLogLevel            = "log_level"
	keyHistoryBackend      = "history_backend"
	keyHistoryDir          = "history_dir"
	keyStrictClientMatch   = "strict_client_match"
	keyBlockLockedAccounts = "block_locked_accounts"
)

// Config holds the runtime settings of the ledger CLI.
type Config struct {
	FailurePolicy       string
	LogLevel            string
	HistoryBackend      string
	HistoryDir          string
	StrictClientMatch   bool
	BlockLockedAccounts bool
}

// Load reads settings from LEDGER_* environment variables. Variables found in
// the dotenv file at dotenvPath are loaded first without overriding the
// environment; a missing file is not an error.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault(keyFailurePolicy, "ignore")
	v.SetDefault(keyLogLevel, "warn")
	v.SetDefault(keyHistoryBackend, BackendMemory)
	v.SetDefault(keyHistoryDir, "")
	v.SetDefault(keyStrictClientMatch, true)
	v.SetDefault(keyBlockLockedAccounts, false)

	cfg := &Config{
		FailurePolicy:       strings.ToLower(strings.TrimSpace(v.GetString(keyFailurePolicy))),
		LogLevel:            v.GetString(keyLogLevel),
		HistoryBackend:      strings.ToLower(strings.TrimSpace(v.GetString(keyHistoryBackend))),
		HistoryDir:          v.GetString(keyHistoryDir),
		StrictClientMatch:   v.GetBool(keyStrictClientMatch),
		BlockLockedAccounts: v.GetBool(keyBlockLockedAccounts),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.FailurePolicy {
	case "ignore", "log", "reject":
	default:
		return fmt.Errorf("invalid %s_FAILURE_POLICY %q: want ignore, log or reject", envPrefix, c.FailurePolicy)
	}

	switch c.HistoryBackend {
	case BackendMemory, BackendBolt:
	default:
		return fmt.Errorf("invalid %s_HISTORY_BACKEND %q: want %s or %s", envPrefix, c.HistoryBackend, BackendMemory, BackendBolt)
	}
	return nil
}
