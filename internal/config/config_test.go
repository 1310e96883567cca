package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.local"
port = 5433
user = "counseling"
password = "secret"
dbname = "counseling_service"

[logs]
file = "logs/test.log"
level = "debug"

[identity_service]
url = "http://identity:8081"
timeout = 3

[template]
counselor_id = 1
slots = ["09:00", "10:00"]
blocked_weekday = "Saturday"
lead_days = 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "http://identity:8081", cfg.IdentityService.URL)
	assert.Equal(t, []string{"09:00", "10:00"}, cfg.Template.Slots)
	assert.Equal(t, 2, cfg.Template.LeadDays)

	// Незаданные секции получают значения по умолчанию
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.RateLimit.Enabled)

	weekday, err := cfg.Template.ParsedBlockedWeekday()
	require.NoError(t, err)
	assert.Equal(t, time.Saturday, weekday)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing database",
			content: `
[identity_service]
url = "http://identity:8081"
`,
		},
		{
			name: "missing identity service url",
			content: `
[database]
host = "db.local"
user = "counseling"
dbname = "counseling_service"
`,
		},
		{
			name: "unknown weekday",
			content: `
[database]
host = "db.local"
user = "counseling"
dbname = "counseling_service"

[identity_service]
url = "http://identity:8081"

[template]
counselor_id = 1
slots = ["09:00"]
blocked_weekday = "Caturday"
`,
		},
		{
			name: "negative lead days",
			content: `
[database]
host = "db.local"
user = "counseling"
dbname = "counseling_service"

[identity_service]
url = "http://identity:8081"

[template]
counselor_id = 1
slots = ["09:00"]
blocked_weekday = "Sunday"
lead_days = -1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.local",
		Port:     5433,
		User:     "counseling",
		Password: "secret",
		DBName:   "counseling_service",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db.local port=5433 user=counseling password=secret dbname=counseling_service sslmode=disable",
		cfg.DSN())
}
