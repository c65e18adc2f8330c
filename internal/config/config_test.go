package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		JWT:      JWTConfig{Secret: "s3cret", TTLHours: 24},
		Upstream: UpstreamConfig{AuthURL: "http://auth", PontoURL: "http://ponto", TimeoutSeconds: 15},
		Storage:  StorageConfig{Backend: "local", Path: "./exports"},
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid local", func(*Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET"},
		{"bad ttl", func(c *Config) { c.JWT.TTLHours = 0 }, "JWT_TTL_HOURS"},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "ftp" }, "STORAGE_BACKEND"},
		{"s3 without bucket", func(c *Config) { c.Storage.Backend = "s3" }, "S3_BUCKET"},
		{"s3 complete", func(c *Config) {
			c.Storage.Backend = "s3"
			c.S3 = S3Config{Bucket: "b", AccessKeyID: "k", SecretAccessKey: "s"}
		}, ""},
		{"partial influx", func(c *Config) { c.InfluxDB.URL = "http://influx" }, "INFLUXDB2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_HOST", "")
	t.Setenv("INFLUXDB2_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8085", cfg.Server.Port)
	assert.Equal(t, "America/Sao_Paulo", cfg.Server.Timezone)
	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, 24, cfg.JWT.TTLHours)
	assert.Equal(t, 15, cfg.Upstream.TimeoutSeconds)
	assert.False(t, cfg.MongoDBEnabled())
	assert.False(t, cfg.InfluxDBEnabled())
}

func TestGetEnvInt_IgnoresGarbage(t *testing.T) {
	t.Setenv("TIMECARD_TEST_INT", "abc")
	assert.Equal(t, 7, getEnvInt("TIMECARD_TEST_INT", 7))
	t.Setenv("TIMECARD_TEST_INT", "12")
	assert.Equal(t, 12, getEnvInt("TIMECARD_TEST_INT", 7))
}
