// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/wiserone/internal/constants"
)

// EnvPrefix is the prefix of environment variables that override config keys.
// Nested keys are separated by a double underscore: WISERONE_SITE__URL sets site.url.
const EnvPrefix = "WISERONE_"

// Config is the root configuration structure.
type Config struct {
	Site     SiteConfig    `koanf:"site"     validate:"required"`
	Paths    PathsConfig   `koanf:"paths"    validate:"required"`
	Log      LogConfig     `koanf:"log"      validate:"required"`
	Journal  JournalConfig `koanf:"journal"`
	Banner   BannerConfig  `koanf:"banner"`
	Timezone string        `koanf:"timezone" validate:"tzname"`
}

// SiteConfig holds the static metadata substituted into every page.
type SiteConfig struct {
	Name                string `koanf:"name"                   validate:"required"`
	URL                 string `koanf:"url"                    validate:"required,url"`
	CDN                 string `koanf:"cdn"                    validate:"omitempty,url"`
	Logo                string `koanf:"logo"                   validate:"omitempty,url"`
	Description         string `koanf:"description"`
	Charset             string `koanf:"charset"                validate:"required"`
	Hreflang            string `koanf:"hreflang"               validate:"required"`
	AppleTouchIconSizes string `koanf:"apple_touch_icon_sizes"`
	MeasurementID       string `koanf:"measurement_id"`
}

// PathsConfig locates the template and the output directory.
type PathsConfig struct {
	Template string `koanf:"template" validate:"required"`
	Output   string `koanf:"output"   validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level      string `koanf:"level"       validate:"required,oneof=debug info warn error"`
	File       string `koanf:"file"        validate:"required"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
}

// JournalConfig controls the build journal.
type JournalConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path" validate:"required_if=Enabled true"`
}

// BannerConfig controls the ASCII-art banner printed at start-up.
type BannerConfig struct {
	Enabled bool   `koanf:"enabled"`
	Text    string `koanf:"text" validate:"required_if=Enabled true"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"site.name":                   constants.DefaultSiteName,
		"site.url":                    constants.DefaultSiteURL,
		"site.cdn":                    constants.DefaultSiteCDN,
		"site.logo":                   constants.DefaultSiteLogo,
		"site.description":            constants.DefaultSiteDescription,
		"site.charset":                constants.DefaultSiteCharset,
		"site.hreflang":               constants.DefaultSiteHreflang,
		"site.apple_touch_icon_sizes": constants.DefaultSiteTouchIconSizes,
		"site.measurement_id":         constants.DefaultSiteMeasurementID,

		"paths.template": constants.DefaultTemplatePath,
		"paths.output":   constants.DefaultOutputDir,

		"log.level":       "info",
		"log.file":        constants.DefaultLogFile,
		"log.max_size":    10,
		"log.max_backups": 3,
		"log.max_age":     28,

		"journal.enabled": true,
		"journal.path":    constants.DefaultJournalPath,

		"banner.enabled": true,
		"banner.text":    constants.BannerText,

		"timezone": constants.DefaultTimezone,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (WISERONE_ prefix)
//  2. YAML config file at path, if it exists
//  3. Default values
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := loadFileIfExists(k, path); err != nil {
			return nil, fmt.Errorf("loading config file %q: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

// BaseURL returns the site URL with exactly one trailing slash.
func (s SiteConfig) BaseURL() string {
	return strings.TrimRight(s.URL, "/") + "/"
}
