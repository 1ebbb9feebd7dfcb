// Package config holds the bookquotes server settings. Values are resolved
// by go-config from defaults, a JSON file, BOOKQUOTES_ environment
// variables and command-line flags.
package config

import (
	validation "github.com/go-ozzo/ozzo-validation"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-errors"
)

// Config holds runtime settings for the server.
type Config struct {
	Server   ServerConfig   `koanf:"server" json:"server"`
	Database DatabaseConfig `koanf:"database" json:"database"`
	JWT      JWTConfig      `koanf:"jwt" json:"jwt"`
	Log      LogConfig      `koanf:"log" json:"log"`
}

type ServerConfig struct {
	Address string `koanf:"address" json:"address"`
	// Prefix mounts the API a second time under this path, "" or "/" disables it
	Prefix string `koanf:"prefix" json:"prefix"`
}

type DatabaseConfig struct {
	Driver string `koanf:"driver" json:"driver"`
	DSN    string `koanf:"dsn" json:"dsn"`
}

type JWTConfig struct {
	SigningKey       string            `koanf:"signing_key" json:"signing_key"`
	KeyID            string            `koanf:"key_id" json:"key_id"`
	VerificationKeys map[string]string `koanf:"verification_keys" json:"verification_keys"`
	Issuer           string            `koanf:"issuer" json:"issuer"`
	Audience         string            `koanf:"audience" json:"audience"`
	ExpireMinutes    int               `koanf:"expire_minutes" json:"expire_minutes"`
	ContextKey       string            `koanf:"context_key" json:"context_key"`
	TokenLookup      string            `koanf:"token_lookup" json:"token_lookup"`
	AuthScheme       string            `koanf:"auth_scheme" json:"auth_scheme"`
}

type LogConfig struct {
	Level  string `koanf:"level" json:"level"`
	Format string `koanf:"format" json:"format"`
}

var _ auth.Config = (*Config)(nil)

// LoadDefaults populates Config with development defaults. The signing
// key, issuer and audience have no default and must be provided.
func (c *Config) LoadDefaults() {
	c.Server.Address = ":8080"
	c.Server.Prefix = "/api"
	c.Database.Driver = "sqlite"
	c.Database.DSN = "file:bookquotes.db?cache=shared"
	c.JWT.KeyID = auth.DefaultSigningKeyID
	c.JWT.ExpireMinutes = auth.DefaultTokenExpiration
	c.JWT.ContextKey = "user"
	c.JWT.TokenLookup = "header:Authorization"
	c.JWT.AuthScheme = "Bearer"
	c.Log.Level = "info"
	c.Log.Format = "json"
}

// Validate rejects configurations we cannot run with. A missing signing
// key is reported as auth.ErrMissingSigningKey.
func (c *Config) Validate() error {
	if c.JWT.SigningKey == "" {
		return auth.ErrMissingSigningKey
	}

	err := validation.Errors{
		"server": validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Address, validation.Required),
		),
		"database": validation.ValidateStruct(&c.Database,
			validation.Field(&c.Database.Driver, validation.Required, validation.In("sqlite", "postgres")),
			validation.Field(&c.Database.DSN, validation.Required),
		),
		"jwt": validation.ValidateStruct(&c.JWT,
			validation.Field(&c.JWT.Issuer, validation.Required),
			validation.Field(&c.JWT.Audience, validation.Required),
			validation.Field(&c.JWT.ExpireMinutes, validation.Required, validation.Min(1)),
		),
		"log": validation.ValidateStruct(&c.Log,
			validation.Field(&c.Log.Format, validation.In("json", "text")),
		),
	}.Filter()

	if err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid configuration").
			WithCode(errors.CodeBadRequest)
	}

	return nil
}

func (c *Config) GetSigningKey() string   { return c.JWT.SigningKey }
func (c *Config) GetSigningKeyID() string { return c.JWT.KeyID }
func (c *Config) GetTokenExpiration() int { return c.JWT.ExpireMinutes }
func (c *Config) GetIssuer() string       { return c.JWT.Issuer }
func (c *Config) GetAudience() string     { return c.JWT.Audience }
func (c *Config) GetContextKey() string   { return c.JWT.ContextKey }
func (c *Config) GetTokenLookup() string  { return c.JWT.TokenLookup }
func (c *Config) GetAuthScheme() string   { return c.JWT.AuthScheme }

func (c *Config) GetVerificationKeys() map[string]string {
	return c.JWT.VerificationKeys
}

// Redacted returns a copy safe to log
func (c Config) Redacted() Config {
	if c.JWT.SigningKey != "" {
		c.JWT.SigningKey = "****"
	}
	if len(c.JWT.VerificationKeys) > 0 {
		keys := make(map[string]string, len(c.JWT.VerificationKeys))
		for kid := range c.JWT.VerificationKeys {
			keys[kid] = "****"
		}
		c.JWT.VerificationKeys = keys
	}
	return c
}
