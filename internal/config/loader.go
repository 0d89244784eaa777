package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration in priority order: defaults, then the config
// file (if present), then PHOTOSNAP_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix("PHOTOSNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("inference.base_url", "https://inference.do-ai.run/v1/async-invoke")
	v.SetDefault("inference.access_key", "")
	v.SetDefault("inference.default_model", "fal-ai/flux/schnell")
	v.SetDefault("inference.poll_interval", "2s")
	v.SetDefault("inference.poll_timeout", "60s")

	// Defaults registered even when empty so AutomaticEnv can override them.
	v.SetDefault("spaces.bucket", "photosnap-bucket")
	v.SetDefault("spaces.region", "sgp1")
	v.SetDefault("spaces.endpoint", "")
	v.SetDefault("spaces.key", "")
	v.SetDefault("spaces.secret", "")

	v.SetDefault("log.level", "info")
}

// SpacesEndpoint returns the configured endpoint, defaulting to the
// region's DigitalOcean Spaces endpoint.
func (c SpacesConfig) SpacesEndpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.digitaloceanspaces.com", c.Region)
}
