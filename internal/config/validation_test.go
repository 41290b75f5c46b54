package config

import (
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing site url",
			mutate:  func(c *Config) { c.Site.URL = "" },
			wantErr: "site.url is required",
		},
		{
			name:    "site url not a url",
			mutate:  func(c *Config) { c.Site.URL = "wiserone" },
			wantErr: "site.url must be a valid URL",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "log.level must be one of: debug info warn error",
		},
		{
			name:    "missing output",
			mutate:  func(c *Config) { c.Paths.Output = "" },
			wantErr: "paths.output is required",
		},
		{
			name:    "journal enabled without path",
			mutate:  func(c *Config) { c.Journal.Path = "" },
			wantErr: "journal.path is required when Enabled true",
		},
		{
			name: "journal disabled without path",
			mutate: func(c *Config) {
				c.Journal.Enabled = false
				c.Journal.Path = ""
			},
		},
		{
			name:    "invalid timezone",
			mutate:  func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr: "timezone must be an IANA timezone name or Local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewValidatorRegistersTimezoneTag(t *testing.T) {
	var v *validator.Validate
	require.NotPanics(t, func() { v = newValidator() })

	assert.NoError(t, v.Var("America/New_York", "tzname"))
	assert.NoError(t, v.Var("Local", "tzname"))
	assert.Error(t, v.Var("Mars/Olympus", "tzname"))
}

func TestMustRegisterPanicsOnBadTag(t *testing.T) {
	v := newValidator()
	assert.Panics(t, func() {
		mustRegister(v, "", func(validator.FieldLevel) bool { return true })
	})
}
