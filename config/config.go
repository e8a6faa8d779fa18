// Package config loads service configuration from a YAML file, a .env
// file, and environment variables. Environment variables win; the file
// provides the base.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/skillsenselab/customer-api/auth/token"
	"github.com/skillsenselab/customer-api/database"
	"github.com/skillsenselab/customer-api/logger"
	"github.com/skillsenselab/customer-api/server"
)

// PasswordConfig configures password hashing.
type PasswordConfig struct {
	// BcryptCost is the bcrypt work factor (default: 10).
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *PasswordConfig) ApplyDefaults() {
	if c.BcryptCost == 0 {
		c.BcryptCost = 10
	}
}

// AuthConfig groups the authentication configuration.
type AuthConfig struct {
	Token    token.Config   `yaml:"token" mapstructure:"token"`
	Password PasswordConfig `yaml:"password" mapstructure:"password"`
}

// Config is the root service configuration.
type Config struct {
	Name        string          `yaml:"name" mapstructure:"name"`
	Environment string          `yaml:"environment" mapstructure:"environment"`
	Server      server.Config   `yaml:"server" mapstructure:"server"`
	Database    database.Config `yaml:"database" mapstructure:"database"`
	Auth        AuthConfig      `yaml:"auth" mapstructure:"auth"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults sets defaults across all sections.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "customer-api"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.Auth.Token.ApplyDefaults()
	c.Auth.Password.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate checks all sections. A missing token secret is an error here so
// the process refuses to start rather than issuing unsigned-in-effect
// tokens.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Token.Validate(); err != nil {
		return err
	}
	return nil
}

// Load reads configuration from the given YAML file (optional), a .env file
// in the working directory (optional), and environment variables prefixed
// with the service name sections (e.g. AUTH_TOKEN_SECRET, SERVER_PORT,
// DATABASE_DSN).
func Load(configFile string) (*Config, error) {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Keys must be known to viper for env-only overrides to bind.
	for _, key := range configKeys {
		v.SetDefault(key, nil)
	}

	if configFile != "" {
		f, err := os.Open(configFile)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", configFile, err)
		}
		defer f.Close()
		if err := v.ReadConfig(f); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", configFile, err)
		}
	}

	var cfg Config
	// Environment values arrive as strings; decode them weakly so numeric
	// fields accept them.
	weak := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(&cfg, weak); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// configKeys lists every bindable key so environment variables alone can
// configure the service.
var configKeys = []string{
	"name",
	"environment",
	"server.host",
	"server.port",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	"database.driver",
	"database.dsn",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime",
	"database.max_retries",
	"database.slow_query_threshold",
	"auth.token.secret",
	"auth.token.ttl",
	"auth.token.issuer",
	"auth.password.bcrypt_cost",
	"logging.level",
	"logging.format",
	"logging.output",
	"logging.no_color",
}
