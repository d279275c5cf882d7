package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/applianceops/remoterun/pkg/remote"
)

const (
	DefaultPort           = 22
	DefaultCommandTimeout = 30 * time.Second
)

// TargetConfig describes one appliance reachable over SSH.
type TargetConfig struct {
	Name           string `mapstructure:"name"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	PrivateKeyPath string `mapstructure:"private_key_path"`
}

// RetryConfig mirrors remote.RetryPolicy in config form.
type RetryConfig struct {
	MaxAttempts       int           `mapstructure:"max_attempts"`
	InitialDelay      time.Duration `mapstructure:"initial_delay"`
	BackoffMultiplier float64       `mapstructure:"backoff_multiplier"`
}

// Config is the top-level configuration for the tool.
type Config struct {
	LogLevel       string         `mapstructure:"log_level"`
	LogFile        string         `mapstructure:"log_file"`
	CommandTimeout time.Duration  `mapstructure:"command_timeout"`
	Retry          RetryConfig    `mapstructure:"retry"`
	Targets        []TargetConfig `mapstructure:"targets"`
}

func setDefaults(v *viper.Viper) {
	defaults := remote.DefaultRetryPolicy()
	v.SetDefault("log_level", "info")
	v.SetDefault("command_timeout", DefaultCommandTimeout)
	v.SetDefault("retry.max_attempts", defaults.MaxAttempts)
	v.SetDefault("retry.initial_delay", defaults.InitialDelay)
	v.SetDefault("retry.backoff_multiplier", defaults.BackoffMultiplier)
}

// Load reads configuration from the given file (YAML or JSON; the extension
// decides). Environment variables prefixed REMOTERUN_ override file values,
// so passwords can stay out of config files.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("REMOTERUN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]struct{}, len(c.Targets))
	for i, target := range c.Targets {
		if target.Name == "" {
			return fmt.Errorf("target %d has no name", i)
		}
		if _, dup := seen[target.Name]; dup {
			return fmt.Errorf("duplicate target name %q", target.Name)
		}
		seen[target.Name] = struct{}{}
	}
	return nil
}

// Target looks a target up by name.
func (c *Config) Target(name string) (TargetConfig, error) {
	for _, target := range c.Targets {
		if target.Name == name {
			return target, nil
		}
	}
	return TargetConfig{}, fmt.Errorf("no target named %q in config", name)
}

// Endpoint converts the target to the core's endpoint type, applying the
// default SSH port.
func (t TargetConfig) Endpoint() remote.Endpoint {
	port := t.Port
	if port == 0 {
		port = DefaultPort
	}
	return remote.Endpoint{
		Host:           t.Host,
		Port:           port,
		User:           t.User,
		Password:       t.Password,
		PrivateKeyPath: t.PrivateKeyPath,
	}
}

// Policy converts the retry section to the core's policy type.
func (r RetryConfig) Policy() remote.RetryPolicy {
	return remote.RetryPolicy{
		MaxAttempts:       r.MaxAttempts,
		InitialDelay:      r.InitialDelay,
		BackoffMultiplier: r.BackoffMultiplier,
	}
}
