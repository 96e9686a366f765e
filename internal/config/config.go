package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Identity IdentityConfig `mapstructure:"identity"`
	Payment  PaymentConfig  `mapstructure:"payment" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Supported document store backends.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver           string        `mapstructure:"driver" validate:"required,oneof=mongo postgres"`
	URL              string        `mapstructure:"url" validate:"required"`
	Name             string        `mapstructure:"name" validate:"required_if=Driver mongo"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout" validate:"gt=0"`
}

// Token verifier modes for protected routes.
const (
	VerifierLocal    = "local"
	VerifierIdentity = "identity"
	VerifierAny      = "any"
)

// AuthConfig contains all authentication and authorization settings.
// Verifier guards the participant routes; AdminVerifier guards the
// administrator routes and defaults to Verifier when empty.
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetime time.Duration `mapstructure:"token_lifetime" validate:"gt=0"`
	Verifier      string        `mapstructure:"verifier" validate:"required,oneof=local identity any"`
	AdminVerifier string        `mapstructure:"admin_verifier" validate:"omitempty,oneof=local identity any"`
}

// AdminVerifierMode returns the verifier mode for administrator routes.
func (c AuthConfig) AdminVerifierMode() string {
	if c.AdminVerifier == "" {
		return c.Verifier
	}
	return c.AdminVerifier
}

// NeedsIdentity reports whether any route group uses the identity provider.
func (c AuthConfig) NeedsIdentity() bool {
	return c.Verifier != VerifierLocal || c.AdminVerifierMode() != VerifierLocal
}

// IdentityConfig holds the identity provider credentials.
// ServiceAccountKey is the base64-encoded service account JSON.
type IdentityConfig struct {
	ServiceAccountKey string `mapstructure:"service_account_key" validate:"omitempty,base64"`
}

// PaymentConfig contains the payment gateway settings.
type PaymentConfig struct {
	StripeSecretKey string  `mapstructure:"stripe_secret_key" validate:"required"`
	Currency        string  `mapstructure:"currency" validate:"required,len=3"`
	ConversionRate  float64 `mapstructure:"conversion_rate" validate:"gt=0"`
	FrontendURL     string  `mapstructure:"frontend_url" validate:"required,url"`
}
