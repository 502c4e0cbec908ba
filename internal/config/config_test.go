package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
[database]
host = "localhost"
user = "postgres"
dbname = "appointments"

[clinic]
treatments = ["General Checkup"]
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30, cfg.Clinic.SlotDurationMinutes)
	assert.False(t, cfg.Clinic.PastSlotInclusive)

	// Окна приёма по умолчанию: утро и вечер
	require.Len(t, cfg.Clinic.Windows, 2)
	assert.Equal(t, "10:00", cfg.Clinic.Windows[0].Open)
	assert.Equal(t, "14:00", cfg.Clinic.Windows[0].Close)
	assert.Equal(t, "16:00", cfg.Clinic.Windows[1].Open)
	assert.Equal(t, "20:00", cfg.Clinic.Windows[1].Close)
}

func TestLoad_FullConfig(t *testing.T) {
	content := `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "clinic"
sslmode = "require"

[clinic]
slot_duration_minutes = 20
past_slot_inclusive = true
treatments = ["Teeth Cleaning", "Root Canal"]

[[clinic.windows]]
open = "09:00"
close = "12:00"
`
	cfg, err := Load(writeConfig(t, content))

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 20, cfg.Clinic.SlotDurationMinutes)
	assert.True(t, cfg.Clinic.PastSlotInclusive)
	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=clinic sslmode=require",
		cfg.Database.DSN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing database host",
			content: `
[database]
user = "postgres"
dbname = "appointments"

[clinic]
treatments = ["General Checkup"]
`,
		},
		{
			name: "no treatments",
			content: `
[database]
host = "localhost"
user = "postgres"
dbname = "appointments"
`,
		},
		{
			name: "window open after close",
			content: minimalConfig + `
[[clinic.windows]]
open = "14:00"
close = "10:00"
`,
		},
		{
			name: "overlapping windows",
			content: minimalConfig + `
[[clinic.windows]]
open = "10:00"
close = "14:00"

[[clinic.windows]]
open = "13:00"
close = "18:00"
`,
		},
		{
			name: "bad window time format",
			content: minimalConfig + `
[[clinic.windows]]
open = "9:00"
close = "12:00"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
