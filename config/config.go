package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Delivery strategies for the contact submission flow
const (
	DeliveryHTTP   = "http"
	DeliveryMailto = "mailto"
)

// PlaceholderResendAPIKey is the sample value shipped in .env templates.
// It is treated the same as an empty key.
const PlaceholderResendAPIKey = "your_resend_api_key_here"

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Contact       ContactConfig
	Email         EmailConfig
	Archive       ArchiveConfig
	EventTriggers EventTriggersConfig
	Admin         AdminConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// ContactConfig selects and configures the submission strategy used by clients
type ContactConfig struct {
	Delivery      string
	BackendURL    string
	MailtoAddress string
}

type EmailConfig struct {
	ResendAPIKey  string
	ResendBaseURL string
	Sender        string
	Recipient     string
}

// Enabled reports whether notification emails should be sent
func (e EmailConfig) Enabled() bool {
	return e.ResendAPIKey != "" && e.ResendAPIKey != PlaceholderResendAPIKey
}

type ArchiveConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
}

// Enabled reports whether submissions should be archived to object storage
func (a ArchiveConfig) Enabled() bool {
	return a.AccessKeyID != "" && a.SecretAccessKey != "" && a.BucketName != ""
}

type EventTriggersConfig struct {
	ContactCreatedTriggerURL string
}

type AdminConfig struct {
	JWTSecret   string
	JWTIssuer   string
	TokenTTLHrs int
}

type CacheConfig struct {
	ContactListTTLSeconds int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables and validates it for the API server
func Load() (*Config, error) {
	cfg := load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClient reads configuration for tools that only submit or read contact
// requests; the database settings are not required.
func LoadClient() (*Config, error) {
	cfg := load()
	if err := cfg.ValidateContact(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load() *Config {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8001")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("BACKEND_URL", "http://localhost:8001")
	v.SetDefault("CONTACT_DELIVERY", DeliveryHTTP)
	v.SetDefault("CONTACT_MAILTO_ADDRESS", "notifine2025@gmail.com")
	v.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	v.SetDefault("SENDER_EMAIL", "onboarding@resend.dev")
	v.SetDefault("RECIPIENT_EMAIL", "notifine2025@gmail.com")
	v.SetDefault("ARCHIVE_REGION", "us-east-1")
	v.SetDefault("ADMIN_JWT_ISSUER", "mbsnyc-api")
	v.SetDefault("ADMIN_TOKEN_TTL_HOURS", 24)
	v.SetDefault("CONTACT_LIST_CACHE_TTL", 60)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_SERVICE_NAME", "mbsnyc-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "mbsnyc")
	v.SetDefault("O11Y_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "mbsnyc-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		Contact: ContactConfig{
			Delivery:      strings.ToLower(strings.TrimSpace(v.GetString("CONTACT_DELIVERY"))),
			BackendURL:    strings.TrimSpace(v.GetString("BACKEND_URL")),
			MailtoAddress: strings.TrimSpace(v.GetString("CONTACT_MAILTO_ADDRESS")),
		},
		Email: EmailConfig{
			ResendAPIKey:  v.GetString("RESEND_API_KEY"),
			ResendBaseURL: v.GetString("RESEND_BASE_URL"),
			Sender:        v.GetString("SENDER_EMAIL"),
			Recipient:     v.GetString("RECIPIENT_EMAIL"),
		},
		Archive: ArchiveConfig{
			AccessKeyID:     v.GetString("ARCHIVE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("ARCHIVE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("ARCHIVE_BUCKET_NAME"),
			Endpoint:        v.GetString("ARCHIVE_ENDPOINT"),
			Region:          v.GetString("ARCHIVE_REGION"),
		},
		EventTriggers: EventTriggersConfig{
			ContactCreatedTriggerURL: v.GetString("CONTACT_CREATED_TRIGGER_URL"),
		},
		Admin: AdminConfig{
			JWTSecret:   v.GetString("ADMIN_JWT_SECRET"),
			JWTIssuer:   v.GetString("ADMIN_JWT_ISSUER"),
			TokenTTLHrs: v.GetInt("ADMIN_TOKEN_TTL_HOURS"),
		},
		Cache: CacheConfig{
			ContactListTTLSeconds: v.GetInt("CONTACT_LIST_CACHE_TTL"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return c.ValidateContact()
}

// ValidateContact checks the settings of the selected submission strategy
func (c *Config) ValidateContact() error {
	switch c.Contact.Delivery {
	case DeliveryHTTP:
		if c.Contact.BackendURL == "" {
			return fmt.Errorf("BACKEND_URL is required when CONTACT_DELIVERY is %q", DeliveryHTTP)
		}
	case DeliveryMailto:
		if c.Contact.MailtoAddress == "" {
			return fmt.Errorf("CONTACT_MAILTO_ADDRESS is required when CONTACT_DELIVERY is %q", DeliveryMailto)
		}
	default:
		return fmt.Errorf("unknown CONTACT_DELIVERY %q (expected %q or %q)", c.Contact.Delivery, DeliveryHTTP, DeliveryMailto)
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// AllowsAnyOrigin reports whether CORS is open to every origin
func (c *Config) AllowsAnyOrigin() bool {
	for _, origin := range c.Server.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
