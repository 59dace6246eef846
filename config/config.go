// Package config loads renderer settings from a YAML file with
// environment-variable fallbacks.
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root settings document.
type Config struct {
	View View `yaml:"view"`
	Fade Fade `yaml:"fade"`
	Draw Draw `yaml:"draw"`
	Log  Log  `yaml:"log"`
}

// View controls visible dimensions and view-mode selection.
type View struct {
	Width        int  `yaml:"width"`
	Height       int  `yaml:"height"`
	AutoViewMode bool `yaml:"auto_view_mode"`
	Multifloor   bool `yaml:"multifloor"`
}

// Fade controls shader cross-fade durations in milliseconds.
type Fade struct {
	InMS  int `yaml:"in_ms"`
	OutMS int `yaml:"out_ms"`
}

// Draw toggles the optional overlay layers.
type Draw struct {
	Names          bool `yaml:"names"`
	HealthBars     bool `yaml:"health_bars"`
	ManaBar        bool `yaml:"mana_bar"`
	Lights         bool `yaml:"lights"`
	Texts          bool `yaml:"texts"`
	FloorShadowing bool `yaml:"floor_shadowing"`
}

// Log selects the logger verbosity.
type Log struct {
	Level string `yaml:"level"`
}

// GetWidth resolves the visible width: config -> MAPVIEW_WIDTH -> 15.
func (v *View) GetWidth() int {
	return getIntWithEnvFallback(v.Width, "MAPVIEW_WIDTH", 15)
}

// GetHeight resolves the visible height: config -> MAPVIEW_HEIGHT -> 11.
func (v *View) GetHeight() int {
	return getIntWithEnvFallback(v.Height, "MAPVIEW_HEIGHT", 11)
}

// GetFadeIn resolves the fade-in duration: config -> MAPVIEW_FADE_IN_MS -> 0.
func (f *Fade) GetFadeIn() time.Duration {
	return time.Duration(getIntWithEnvFallback(f.InMS, "MAPVIEW_FADE_IN_MS", 0)) * time.Millisecond
}

// GetFadeOut resolves the fade-out duration: config -> MAPVIEW_FADE_OUT_MS -> 0.
func (f *Fade) GetFadeOut() time.Duration {
	return time.Duration(getIntWithEnvFallback(f.OutMS, "MAPVIEW_FADE_OUT_MS", 0)) * time.Millisecond
}

// GetLevel resolves the log level: config -> MAPVIEW_LOG_LEVEL -> "info".
func (l *Log) GetLevel() string {
	if l.Level != "" {
		return l.Level
	}
	if env := os.Getenv("MAPVIEW_LOG_LEVEL"); env != "" {
		return env
	}
	return "info"
}

// getIntWithEnvFallback resolves an integer with priority: config -> env -> default.
func getIntWithEnvFallback(configVal int, envVar string, defaultVal int) int {
	if configVal > 0 {
		return configVal
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if n, err := strconv.Atoi(envVal); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		View: View{AutoViewMode: true, Multifloor: true},
		Draw: Draw{
			Names:          true,
			HealthBars:     true,
			ManaBar:        true,
			Lights:         true,
			Texts:          true,
			FloorShadowing: true,
		},
	}
}

// Load reads a YAML configuration file. With an empty path it tries the
// MAPVIEW_CONFIG environment variable and falls back to Default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("MAPVIEW_CONFIG")
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
