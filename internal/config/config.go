package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Score modes understood by the CLI.
const (
	ModeJoin    = "join"
	ModeLeave   = "leave"
	ModeRecruit = "recruit"
	ModeTable   = "table"
)

const configName = "fealty"

// Config holds runtime configuration loaded from defaults, an optional
// fealty.json file and FEALTY_* environment variables.
type Config struct {
	SnapshotFile string `mapstructure:"snapshotFile"`
	RedisURL     string `mapstructure:"redisUrl"`
	WorldID      string `mapstructure:"worldId"`
	Mode         string `mapstructure:"mode"`
}

// Load reads configuration from the directory named by FEALTY_CONFIG_DIR,
// or the working directory.
func Load() (*Config, error) {
	dir := os.Getenv("FEALTY_CONFIG_DIR")
	if dir == "" {
		dir = "."
	}
	return LoadFrom(dir)
}

// LoadFrom reads configuration with fealty.json looked up in dir. A missing
// file is not an error.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("snapshotFile", "")
	v.SetDefault("redisUrl", "")
	v.SetDefault("worldId", "default")
	v.SetDefault("mode", ModeJoin)

	for _, key := range []string{"snapshotFile", "redisUrl", "worldId", "mode"} {
		if err := v.BindEnv(key, "FEALTY_"+envName(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configName)
	v.SetConfigType("json")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the mode is known.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeJoin, ModeLeave, ModeRecruit, ModeTable:
		return nil
	}
	return fmt.Errorf("unknown mode %q (want join, leave, recruit or table)", c.Mode)
}

// envName turns a camelCase key into SNAKE_CASE.
func envName(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
