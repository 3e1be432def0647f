// Package config loads the corkboard YAML configuration. Values come from
// Defaults, then the config file, then CORKBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phanxgames/corkboard"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CanvasConfig struct {
	MinScale            float64 `yaml:"min_scale"`
	MaxScale            float64 `yaml:"max_scale"`
	ZoomStep            float64 `yaml:"zoom_step"`
	WindowDragThreshold float64 `yaml:"window_drag_threshold"`
	ResizeMargin        float64 `yaml:"resize_margin"`
	MinItemWidth        float64 `yaml:"min_item_width"`
	MinItemHeight       float64 `yaml:"min_item_height"`
	PreserveAspect      bool    `yaml:"preserve_aspect"`
	Inertia             bool    `yaml:"inertia"`
	InertiaDuration     float32 `yaml:"inertia_duration"`
	ScreenshotDir       string  `yaml:"screenshot_dir"`
}

type HostConfig struct {
	// Address is the hostlink websocket URL the canvas dials. Empty runs the
	// host in process.
	Address string `yaml:"address"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the file schema. Bump ConfigVersion on incompatible changes.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Window        WindowConfig  `yaml:"window"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Host          HostConfig    `yaml:"host"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the stock configuration.
func Defaults() AppConfig {
	o := corkboard.DefaultOptions()
	return AppConfig{
		ConfigVersion: 1,
		Window:        WindowConfig{Title: "Corkboard", Width: 1024, Height: 768},
		Canvas: CanvasConfig{
			MinScale:            o.MinScale,
			MaxScale:            o.MaxScale,
			ZoomStep:            o.ZoomStep,
			WindowDragThreshold: o.WindowDragThreshold,
			ResizeMargin:        o.ResizeMargin,
			MinItemWidth:        o.MinItemWidth,
			MinItemHeight:       o.MinItemHeight,
			PreserveAspect:      o.PreserveAspect,
			Inertia:             o.Inertia,
			InertiaDuration:     o.InertiaDuration,
			ScreenshotDir:       o.ScreenshotDir,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Environment overrides.
const (
	EnvWindowTitle  = "CORKBOARD_WINDOW_TITLE"
	EnvWindowWidth  = "CORKBOARD_WINDOW_WIDTH"
	EnvWindowHeight = "CORKBOARD_WINDOW_HEIGHT"
	EnvInertia      = "CORKBOARD_INERTIA"
	EnvPreserve     = "CORKBOARD_PRESERVE_ASPECT"
	EnvHostAddress  = "CORKBOARD_HOST_ADDRESS"
	EnvLogLevel     = "CORKBOARD_LOG_LEVEL"
	EnvLogFormat    = "CORKBOARD_LOG_FORMAT"
	EnvLogSource    = "CORKBOARD_LOG_SOURCE"
	EnvLogFile      = "CORKBOARD_LOG_FILE"
)

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "corkboard", "config.yaml"), nil
}

// Load reads path over Defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg from CORKBOARD_* variables. Unparsable numbers are
// ignored.
func ApplyEnv(cfg *AppConfig) {
	if v := env(EnvWindowTitle); v != "" {
		cfg.Window.Title = v
	}
	if n, ok := envInt(EnvWindowWidth); ok {
		cfg.Window.Width = n
	}
	if n, ok := envInt(EnvWindowHeight); ok {
		cfg.Window.Height = n
	}
	if v := env(EnvInertia); v != "" {
		cfg.Canvas.Inertia = truthy(v)
	}
	if v := env(EnvPreserve); v != "" {
		cfg.Canvas.PreserveAspect = truthy(v)
	}
	if v := env(EnvHostAddress); v != "" {
		cfg.Host.Address = v
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := env(EnvLogFormat); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := env(EnvLogSource); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := env(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
}

// Validate reports the first inconsistent field.
func (c AppConfig) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Canvas.MinScale <= 0 || c.Canvas.MaxScale < c.Canvas.MinScale:
		return fmt.Errorf("%w: scale range [%g, %g]", ErrInvalid, c.Canvas.MinScale, c.Canvas.MaxScale)
	case c.Canvas.ZoomStep <= 1:
		return fmt.Errorf("%w: zoom_step %g must exceed 1", ErrInvalid, c.Canvas.ZoomStep)
	case c.Canvas.MinItemWidth < 0 || c.Canvas.MinItemHeight < 0:
		return fmt.Errorf("%w: negative minimum item size", ErrInvalid)
	}
	return nil
}

// BoardOptions converts the canvas section to board options.
func (c AppConfig) BoardOptions() corkboard.Options {
	o := corkboard.DefaultOptions()
	o.MinScale = c.Canvas.MinScale
	o.MaxScale = c.Canvas.MaxScale
	o.ZoomStep = c.Canvas.ZoomStep
	o.WindowDragThreshold = c.Canvas.WindowDragThreshold
	o.ResizeMargin = c.Canvas.ResizeMargin
	o.MinItemWidth = c.Canvas.MinItemWidth
	o.MinItemHeight = c.Canvas.MinItemHeight
	o.PreserveAspect = c.Canvas.PreserveAspect
	o.Inertia = c.Canvas.Inertia
	o.InertiaDuration = c.Canvas.InertiaDuration
	o.ScreenshotDir = c.Canvas.ScreenshotDir
	return o
}

func env(key string) string { return strings.TrimSpace(os.Getenv(key)) }

func envInt(key string) (int, bool) {
	v := env(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
