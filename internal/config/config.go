// Package config loads server and CLI settings with Viper.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwizard/pkg/account"
)

// EnvPrefix prefixes every environment variable, e.g. FORMWIZARD_ADDR.
const EnvPrefix = "FORMWIZARD"

// Theme configures the HTML renderer's theme.
type Theme struct {
	Name    string            `mapstructure:"name" yaml:"name,omitempty"`
	Variant string            `mapstructure:"variant" yaml:"variant,omitempty"`
	Tokens  map[string]string `mapstructure:"tokens" yaml:"tokens,omitempty"`
	CSSVars map[string]string `mapstructure:"css_vars" yaml:"css_vars,omitempty"`
}

// Config holds all configuration values.
type Config struct {
	Addr           string        `mapstructure:"addr" yaml:"addr"`
	ShutdownGrace  time.Duration `mapstructure:"shutdown_grace" yaml:"shutdown_grace"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	Database       string        `mapstructure:"database" yaml:"database"`
	UsernamePolicy string        `mapstructure:"username_policy" yaml:"username_policy"`
	EmailDomain    string        `mapstructure:"email_domain" yaml:"email_domain"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogDevelopment bool          `mapstructure:"log_development" yaml:"log_development"`
	StepsFile      string        `mapstructure:"steps_file" yaml:"steps_file"`
	Theme          Theme         `mapstructure:"theme" yaml:"theme"`
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"addr":            "addr",
	"grace":           "shutdown_grace",
	"session-ttl":     "session_ttl",
	"database":        "database",
	"username-policy": "username_policy",
	"email-domain":    "email_domain",
	"log-level":       "log_level",
	"dev":             "log_development",
	"steps":           "steps_file",
	"theme":           "theme.name",
}

// Load loads configuration with precedence:
// CLI flags > FORMWIZARD_* env vars > config file > defaults.
// configFile may be empty, in which case ./formwizard.yml is read when
// present. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("addr", ":8383")
	v.SetDefault("shutdown_grace", 5*time.Second)
	v.SetDefault("session_ttl", 30*time.Minute)
	v.SetDefault("database", "")
	v.SetDefault("username_policy", string(account.PolicyPreserve))
	v.SetDefault("email_domain", account.DefaultEmailDomain)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_development", false)
	v.SetDefault("steps_file", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		"addr", "shutdown_grace", "session_ttl", "database", "username_policy",
		"email_domain", "log_level", "log_development", "steps_file",
		"theme.name", "theme.variant",
	} {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding %s flag: %w", name, err)
			}
		}
	}

	path := configFile
	if path == "" && fileExists(ProjectPath()) {
		path = ProjectPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that are parsed later by other packages.
func (c *Config) Validate() error {
	var errs []error
	if _, err := account.ParsePolicy(c.UsernamePolicy); err != nil {
		errs = append(errs, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: log_level: %w", err))
	}
	if c.ShutdownGrace < 0 {
		errs = append(errs, errors.New("config: shutdown_grace must not be negative"))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, errors.New("config: session_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

// Policy returns the parsed username policy.
func (c *Config) Policy() account.UsernamePolicy {
	policy, err := account.ParsePolicy(c.UsernamePolicy)
	if err != nil {
		return account.PolicyPreserve
	}
	return policy
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "formwizard.yml"
}

// Write writes cfg as YAML to path.
func Write(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Encode writes cfg as YAML to w.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
