package imgedit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides of settings files, e.g.
// IMGEDIT_STYLE or IMGEDIT_HUE.
const EnvPrefix = "IMGEDIT"

// settingsFile is the on-disk form of Settings. Ranges are checked by
// Settings.Validate once the style name is parsed.
type settingsFile struct {
	Style      string `mapstructure:"style" default:"No Filter (Base)"`
	Brightness int    `mapstructure:"brightness" default:"0"`
	Contrast   int    `mapstructure:"contrast" default:"0"`
	Saturation int    `mapstructure:"saturation" default:"0"`
	Hue        int    `mapstructure:"hue" default:"0"`
}

// LoadSettings reads settings from a YAML, JSON or TOML file. Missing keys
// take their neutral defaults and IMGEDIT_* environment variables override
// file values. With an empty path only defaults and the environment apply.
func LoadSettings(path string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var file settingsFile
	if err := defaults.Set(&file); err != nil {
		return Settings{}, fmt.Errorf("failed to set defaults: %w", err)
	}
	// AutomaticEnv only applies to keys viper knows about.
	for key, value := range map[string]any{
		"style":      file.Style,
		"brightness": file.Brightness,
		"contrast":   file.Contrast,
		"saturation": file.Saturation,
		"hue":        file.Hue,
	} {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&file); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal settings %s: %w", path, err)
	}

	style, err := ParseStyle(file.Style)
	if err != nil {
		return Settings{}, errors.Join(ErrInvalidSettings, err)
	}
	settings := Settings{
		Style:      style,
		Brightness: file.Brightness,
		Contrast:   file.Contrast,
		Saturation: file.Saturation,
		Hue:        file.Hue,
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
