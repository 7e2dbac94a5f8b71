package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fakturo/fakturo/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Export     ExportConfig
	Email      EmailConfig
	Webhook    WebhookConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string `validate:"required"`
	Port                   int    `validate:"required"`
	User                   string `validate:"required"`
	Password               string
	DBName                 string `validate:"required"`
	SSLMode                string `default:"disable"`
	MaxOpenConns           int    `default:"10"`
	MaxIdleConns           int    `default:"5"`
	ConnMaxLifetimeMinutes int    `default:"30"`
}

type AuthConfig struct {
	Provider types.AuthProvider `validate:"required"`
	Secret   string
	Supabase SupabaseConfig
	APIKey   APIKeyConfig
}

type SupabaseConfig struct {
	BaseURL    string
	ServiceKey string
}

type APIKeyConfig struct {
	Header string `default:"x-api-key"`
	Keys   map[string]APIKeyDetails
}

type APIKeyDetails struct {
	TenantID string
	UserID   string
	IsActive bool
}

// ExportConfig points at the remote PDF render service
type ExportConfig struct {
	Enabled bool
	BaseURL string
}

// EmailConfig points at the remote email delivery service
type EmailConfig struct {
	Enabled     bool
	BaseURL     string
	APIKey      string
	FromAddress string
}

type WebhookConfig struct {
	Svix SvixConfig
}

type SvixConfig struct {
	Enabled   bool
	AuthToken string
	BaseURL   string
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fakturo")

	v.SetEnvPrefix("FAKTURO")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func (c PostgresConfig) GetDSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode,
	)
}

// GetDefaultConfig returns a default configuration for local development
// and unit tests.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Auth:       AuthConfig{Provider: types.AuthProviderSupabase},
	}
}
