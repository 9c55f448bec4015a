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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123"
shift:
  check_in_early_minutes: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Europe/Istanbul", cfg.Shift.Timezone)
	assert.Equal(t, 30*time.Minute, cfg.Shift.CheckInEarlyWindow())
	assert.Equal(t, 12*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, time.Minute, cfg.Shift.CheckRateWindow)
	assert.Equal(t, 1000, cfg.Import.MaxRows)

	loc, err := cfg.Shift.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", loc.String())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef0123"
server:
  port: 9000
`)
	t.Setenv("VARDIYA_SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestLoad_ShortSecret(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "short"
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Auth:   AuthConfig{JWTSecret: "0123456789abcdef"},
			Shift:  ShiftConfig{Timezone: "Europe/Istanbul", CheckInEarlyMinutes: 15},
			Import: ImportConfig{MaxRows: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"合法配置", func(c *Config) {}, false},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }, true},
		{"无效时区", func(c *Config) { c.Shift.Timezone = "Mars/Olympus" }, true},
		{"提前签到为负", func(c *Config) { c.Shift.CheckInEarlyMinutes = -1 }, true},
		{"导入行数为零", func(c *Config) { c.Import.MaxRows = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
