package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Video     VideoConfig     `toml:"video"`
	Scripting ScriptingConfig `toml:"scripting"`
	Database  DatabaseConfig  `toml:"database"`
	Autosave  AutosaveConfig  `toml:"autosave"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// IsZero reports whether s is the (0,0) sentinel.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

type VideoConfig struct {
	Backend               string  `toml:"backend"` // "sdl" or "ebiten"
	Title                 string  `toml:"title"`
	UseFullscreen         bool    `toml:"use_fullscreen"`
	FullscreenSize        Size    `toml:"fullscreen_size"` // 0x0 = desktop resolution
	FullscreenRefreshRate int     `toml:"fullscreen_refresh_rate"`
	WindowSize            Size    `toml:"window_size"`
	WindowResizable       bool    `toml:"window_resizable"`
	Gamma                 float32 `toml:"gamma"`
}

type ScriptingConfig struct {
	Dir                 string `toml:"dir"`
	Manifest            string `toml:"manifest"`        // relative to Dir
	SourceEncoding      string `toml:"source_encoding"` // IANA name, "" = utf-8
	IncludeGoStackTrace bool   `toml:"include_go_stack_trace"`
}

type DatabaseConfig struct {
	Driver          string        `toml:"driver"` // "sqlite" or "postgres"
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type AutosaveConfig struct {
	Enabled  bool          `toml:"enabled"`
	Interval time.Duration `toml:"interval"`
	Slot     string        `toml:"slot"`
	Table    string        `toml:"table"` // global script table to snapshot
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the defaults are returned so first start works.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed. The file
// is replaced atomically.
func Save(path string, cfg *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config %s: %w", path, err)
	}
	return nil
}

// Default returns a fresh copy of the built-in configuration.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Video: VideoConfig{
			Backend:               "sdl",
			Title:                 "TuxGo",
			UseFullscreen:         false,
			FullscreenSize:        Size{0, 0},
			FullscreenRefreshRate: 0,
			WindowSize:            Size{Width: 1280, Height: 800},
			WindowResizable:       true,
			Gamma:                 1.0,
		},
		Scripting: ScriptingConfig{
			Dir:      "data/scripts",
			Manifest: "scripts.yaml",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "data/saves.db",
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Autosave: AutosaveConfig{
			Enabled:  true,
			Interval: 5 * time.Minute,
			Slot:     "autosave",
			Table:    "state",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
