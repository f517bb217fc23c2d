package config

import (
	"errors"
	"time"
)

// Defaults applied after all sources are merged. Secrets and the DSN have
// no defaults and must be supplied explicitly.
const (
	defaultTokenIssuer    = "tournest"
	defaultTokenDuration  = 72 * time.Hour
	defaultBcryptCost     = 12
	defaultResetTokenTTL  = 10 * time.Minute
	defaultHTTPAddress    = ":8080"
	defaultRequestTimeout = 30 * time.Second
	defaultMailTimeout    = 10 * time.Second
)

// applyDefaults fills zero-valued fields that have sensible defaults.
// CookieTTL defaults to the token lifetime so the cookie never outlives
// the token it carries.
func (c *StructuredConfig) applyDefaults() {
	if c.App.TokenIssuer == "" {
		c.App.TokenIssuer = defaultTokenIssuer
	}
	if c.App.TokenDuration == 0 {
		c.App.TokenDuration = defaultTokenDuration
	}
	if c.App.BcryptCost == 0 {
		c.App.BcryptCost = defaultBcryptCost
	}
	if c.App.ResetTokenTTL == 0 {
		c.App.ResetTokenTTL = defaultResetTokenTTL
	}
	if c.App.CookieTTL == 0 || c.App.CookieTTL > c.App.TokenDuration {
		c.App.CookieTTL = c.App.TokenDuration
	}
	if c.App.Environment == "" {
		c.App.Environment = EnvProduction
	}
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = defaultHTTPAddress
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = defaultRequestTimeout
	}
	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = defaultMailTimeout
	}
}

// validate checks that the merged configuration is complete enough to run
// the server. It reports every problem at once via errors.Join.
func (c *StructuredConfig) validate() error {
	var errs []error

	if c.App.TokenSignKey == "" {
		errs = append(errs, errTokenSignKeyIsRequired)
	}
	if c.Storage.DB.DSN == "" {
		errs = append(errs, errDSNIsRequired)
	}
	if c.App.Environment != EnvProduction && c.App.Environment != EnvDevelopment {
		errs = append(errs, errUnknownEnvironment)
	}

	return errors.Join(errs...)
}
