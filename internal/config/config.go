package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Contact ContactConfig
	Twilio  TwilioConfig
	Email   EmailConfig
	Kafka   KafkaConfig
	Notify  NotifyConfig
	Redis   RedisConfig
	Admin   AdminConfig
	MinIO   MinIOConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	LogLevel        string
	LogFormat       string
	FrontendDir     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type MongoDBConfig struct {
	Driver   string // "mongo" or "memory"
	URI      string
	Database string
	Timeout  time.Duration
}

type ContactConfig struct {
	// RequireStore rejects submissions that could not be persisted instead of
	// acknowledging them anyway.
	RequireStore bool
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
	WhatsAppTo   string
	APIURL       string
}

type EmailConfig struct {
	Enabled    bool
	WebhookURL string
	To         string
}

type KafkaConfig struct {
	Brokers   []string
	LeadTopic string
}

type NotifyConfig struct {
	Timeout time.Duration
	Rate    float64
	Burst   int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	CacheTTL time.Duration
}

type AdminConfig struct {
	JWTSecret    string
	OIDCIssuer   string
	OIDCClientID string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// LoadConfig loads configuration from environment variables and an optional .env file.
// A missing MONGODB_URI is not an error: the store reports itself unavailable.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGODB_DATABASE", "portfolio")
	v.SetDefault("MONGODB_TIMEOUT", "5s")
	v.SetDefault("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886")
	v.SetDefault("TWILIO_WHATSAPP_TO", "whatsapp:+15005550006")
	v.SetDefault("TWILIO_API_URL", "https://api.twilio.com")
	v.SetDefault("KAFKA_LEAD_TOPIC", "lead.events")
	v.SetDefault("NOTIFY_TIMEOUT", "10s")
	v.SetDefault("NOTIFY_RATE", 0)
	v.SetDefault("NOTIFY_BURST", 1)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("PORTFOLIO_CACHE_TTL", "5m")
	v.SetDefault("MINIO_BUCKET", "portfolio-backups")

	env := v.GetString("SERVER_ENVIRONMENT")
	logFormat := v.GetString("LOG_FORMAT")
	if logFormat == "" && env == "production" {
		logFormat = "json"
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     env,
			LogLevel:        v.GetString("LOG_LEVEL"),
			LogFormat:       logFormat,
			FrontendDir:     v.GetString("FRONTEND_BUILD_DIR"),
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		MongoDB: MongoDBConfig{
			Driver:   strings.ToLower(v.GetString("STORE_DRIVER")),
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  v.GetDuration("MONGODB_TIMEOUT"),
		},
		Contact: ContactConfig{
			RequireStore: v.GetBool("CONTACT_REQUIRE_STORE"),
		},
		Twilio: TwilioConfig{
			AccountSID:   v.GetString("TWILIO_ACCOUNT_SID"),
			AuthToken:    v.GetString("TWILIO_AUTH_TOKEN"),
			WhatsAppFrom: v.GetString("TWILIO_WHATSAPP_FROM"),
			WhatsAppTo:   v.GetString("TWILIO_WHATSAPP_TO"),
			APIURL:       strings.TrimRight(v.GetString("TWILIO_API_URL"), "/"),
		},
		Email: EmailConfig{
			Enabled:    v.GetBool("NOTIFY_EMAIL"),
			WebhookURL: v.GetString("EMAIL_WEBHOOK_URL"),
			To:         v.GetString("EMAIL_TO"),
		},
		Kafka: KafkaConfig{
			Brokers:   splitList(v.GetString("KAFKA_BROKERS")),
			LeadTopic: v.GetString("KAFKA_LEAD_TOPIC"),
		},
		Notify: NotifyConfig{
			Timeout: v.GetDuration("NOTIFY_TIMEOUT"),
			Rate:    v.GetFloat64("NOTIFY_RATE"),
			Burst:   v.GetInt("NOTIFY_BURST"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			CacheTTL: v.GetDuration("PORTFOLIO_CACHE_TTL"),
		},
		Admin: AdminConfig{
			JWTSecret:    v.GetString("ADMIN_JWT_SECRET"),
			OIDCIssuer:   v.GetString("OIDC_ISSUER"),
			OIDCClientID: v.GetString("OIDC_CLIENT_ID"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
	}

	if cfg.MongoDB.Timeout <= 0 {
		cfg.MongoDB.Timeout = 5 * time.Second
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}
	if cfg.Notify.Burst <= 0 {
		cfg.Notify.Burst = 1
	}

	return cfg, nil
}

// TwilioConfigured reports whether WhatsApp notifications can be sent.
func (c *Config) TwilioConfigured() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != ""
}

// AdminGateEnabled reports whether administrative endpoints require a credential.
func (c *Config) AdminGateEnabled() bool {
	return c.Admin.JWTSecret != "" || (c.Admin.OIDCIssuer != "" && c.Admin.OIDCClientID != "")
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
