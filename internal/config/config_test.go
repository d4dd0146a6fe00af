package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	t.Setenv("TWILIO_AUTH_TOKEN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "5000", cfg.Server.Port)
	require.Equal(t, "mongo", cfg.MongoDB.Driver)
	require.Equal(t, "portfolio", cfg.MongoDB.Database)
	require.Equal(t, 5*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "whatsapp:+14155238886", cfg.Twilio.WhatsAppFrom)
	require.Equal(t, "lead.events", cfg.Kafka.LeadTopic)
	require.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	require.False(t, cfg.Contact.RequireStore)
	require.False(t, cfg.TwilioConfigured())
	require.Empty(t, cfg.MongoDB.URI, "a missing store URI must not fail loading")
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_TIMEOUT", "2s")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "secret")
	t.Setenv("TWILIO_API_URL", "http://twilio.local/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CONTACT_REQUIRE_STORE", "true")
	t.Setenv("NOTIFY_EMAIL", "true")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("SERVER_ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "json", cfg.Server.LogFormat)
	require.Equal(t, "memory", cfg.MongoDB.Driver)
	require.Equal(t, 2*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "http://twilio.local", cfg.Twilio.APIURL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.True(t, cfg.Contact.RequireStore)
	require.True(t, cfg.Email.Enabled)
	require.True(t, cfg.TwilioConfigured())
	require.True(t, cfg.AdminGateEnabled())
}
