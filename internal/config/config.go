// Package config loads daemon configuration from a YAML file with
// environment variable overrides.
package config

import "time"

// Config is the root configuration for photosnapd.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Inference InferenceConfig `mapstructure:"inference"`
	Spaces    SpacesConfig    `mapstructure:"spaces"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// InferenceConfig holds the serverless inference settings.
type InferenceConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	AccessKey    string        `mapstructure:"access_key"`
	DefaultModel string        `mapstructure:"default_model"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	PollTimeout  time.Duration `mapstructure:"poll_timeout"`
}

// SpacesConfig holds the object storage settings.
type SpacesConfig struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	Key      string `mapstructure:"key"`
	Secret   string `mapstructure:"secret"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}
