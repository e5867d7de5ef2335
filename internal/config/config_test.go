package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 8080
database:
  host: "localhost"
  user: "cro"
  database: "cro_test"
jwt:
  secret: "test-secret-0123456789abcdef0123456789"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, DefaultCalendlyURL, cfg.Landing.CalendlyURL)
	assert.Equal(t, DefaultWidgetScriptURL, cfg.Landing.WidgetScriptURL)
	assert.Empty(t, cfg.Landing.ClarityID)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 6, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 90, cfg.Scheduler.AnalyticsRetentionDays)
	assert.Equal(t, ":8080", cfg.GetServerAddress())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("CALENDLY_URL", "https://calendly.com/acme/intro")
	t.Setenv("CLARITY_ID", "clarity-123")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://calendly.com/acme/intro", cfg.Landing.CalendlyURL)
	assert.Equal(t, "clarity-123", cfg.Landing.ClarityID)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	// Values not overridden keep the file contents
	assert.Equal(t, "localhost", cfg.Database.Host)
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing port",
			yaml: "database: {host: h, user: u, database: d}\njwt: {secret: test-secret-0123456789abcdef0123456789}",
			want: "invalid server port",
		},
		{
			name: "short secret",
			yaml: "server: {port: 1}\ndatabase: {host: h, user: u, database: d}\njwt: {secret: short}",
			want: "at least 32 characters",
		},
		{
			name: "confirmation without url",
			yaml: minimalYAML + "auth:\n  require_email_confirmation: true\n",
			want: "confirm URL base is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://cro:@localhost:0/cro_test?sslmode=disable", cfg.GetDatabaseConnectionString())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
