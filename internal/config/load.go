package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads.
const EnvPrefix = "CARECAMP"

// ErrMissingIdentityKey is returned when the identity verifier is enabled
// without service account credentials.
var ErrMissingIdentityKey = errors.New(
	"identity.service_account_key is required unless auth.verifier and auth.admin_verifier are local")

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the cross-field rules the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Auth.NeedsIdentity() && cfg.Identity.ServiceAccountKey == "" {
		return fmt.Errorf("invalid configuration: %w", ErrMissingIdentityKey)
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", DriverMongo)
	v.SetDefault("database.name", "MediCamp")
	v.SetDefault("database.operation_timeout", "10s")

	v.SetDefault("auth.token_lifetime", "168h")
	v.SetDefault("auth.verifier", VerifierLocal)

	v.SetDefault("payment.currency", "usd")
	v.SetDefault("payment.conversion_rate", 126.0)
	v.SetDefault("payment.frontend_url", "https://carecamp-06.web.app")
}

// bindEnvs registers keys without defaults so AutomaticEnv can see them
// during Unmarshal.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"database.url",
		"auth.jwt_secret",
		"auth.admin_verifier",
		"identity.service_account_key",
		"payment.stripe_secret_key",
	} {
		_ = v.BindEnv(key)
	}
}
