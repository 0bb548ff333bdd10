// Package config loads shotdrop settings from TOML, YAML or JSON, applies
// SHOTDROP_* environment overrides and validates the result
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/shotdrop/engine"
	"github.com/lixenwraith/shotdrop/magnet"
	"github.com/lixenwraith/shotdrop/snap"
	"github.com/lixenwraith/shotdrop/zone"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment override
const EnvPrefix = "SHOTDROP_"

// Config holds the complete application configuration
type Config struct {
	Gesture GestureConfig `toml:"gesture" json:"gesture" yaml:"gesture"`
	Layout  LayoutConfig  `toml:"layout" json:"layout" yaml:"layout"`
	Magnet  MagnetConfig  `toml:"magnet" json:"magnet" yaml:"magnet"`
	Snap    SnapConfig    `toml:"snap" json:"snap" yaml:"snap"`
	Token   TokenConfig   `toml:"token" json:"token" yaml:"token"`
	Host    HostConfig    `toml:"host" json:"host" yaml:"host"`
	Paths   PathsConfig   `toml:"paths" json:"paths" yaml:"paths"`
	Audio   AudioConfig   `toml:"audio" json:"audio" yaml:"audio"`
	Log     LogConfig     `toml:"log" json:"log" yaml:"log"`
}

// GestureConfig tunes the tap/drag classifier
type GestureConfig struct {
	ThresholdPx float64 `toml:"threshold_px" json:"threshold_px" yaml:"threshold_px"`
	TapWindowMs int64   `toml:"tap_window_ms" json:"tap_window_ms" yaml:"tap_window_ms"`
}

// LayoutConfig tunes zone placement and shape
type LayoutConfig struct {
	PetalCount       int     `toml:"petal_count" json:"petal_count" yaml:"petal_count"`
	PetalDepth       float64 `toml:"petal_depth" json:"petal_depth" yaml:"petal_depth"`
	ZoneRadiusPx     float64 `toml:"zone_radius_px" json:"zone_radius_px" yaml:"zone_radius_px"` // 0 derives from screen size
	SingleZoneOffset float64 `toml:"single_zone_offset" json:"single_zone_offset" yaml:"single_zone_offset"`
}

// MagnetConfig tunes highlight, attraction and pulse
type MagnetConfig struct {
	HighlightMargin float64 `toml:"highlight_margin" json:"highlight_margin" yaml:"highlight_margin"`
	AttractRange    float64 `toml:"attract_range" json:"attract_range" yaml:"attract_range"`
	AttractPull     float64 `toml:"attract_pull" json:"attract_pull" yaml:"attract_pull"`
	PulsePeriodMs   int64   `toml:"pulse_period_ms" json:"pulse_period_ms" yaml:"pulse_period_ms"`
	PulseScale      float64 `toml:"pulse_scale" json:"pulse_scale" yaml:"pulse_scale"`
}

// SnapConfig tunes the edge-snap animation
type SnapConfig struct {
	TickMs  int64   `toml:"tick_ms" json:"tick_ms" yaml:"tick_ms"`
	PxPerMs float64 `toml:"px_per_ms" json:"px_per_ms" yaml:"px_per_ms"`
	MinMs   int64   `toml:"min_ms" json:"min_ms" yaml:"min_ms"`
	MaxMs   int64   `toml:"max_ms" json:"max_ms" yaml:"max_ms"`
}

// TokenConfig is the floating token size in pixels
type TokenConfig struct {
	Width  int `toml:"width" json:"width" yaml:"width"`
	Height int `toml:"height" json:"height" yaml:"height"`
}

// HostConfig maps terminal cells to engine pixels
type HostConfig struct {
	CellWidth  int `toml:"cell_width" json:"cell_width" yaml:"cell_width"`
	CellHeight int `toml:"cell_height" json:"cell_height" yaml:"cell_height"`
}

// PathsConfig locates the capture directory and the folder database
type PathsConfig struct {
	CaptureDir string `toml:"capture_dir" json:"capture_dir" yaml:"capture_dir"`
	Database   string `toml:"database" json:"database" yaml:"database"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled bool    `toml:"enabled" json:"enabled" yaml:"enabled"`
	Volume  float64 `toml:"volume" json:"volume" yaml:"volume"` // 0..1
}

// LogConfig controls the log file; logs never go to the terminal the host draws on
type LogConfig struct {
	Level string `toml:"level" json:"level" yaml:"level"`
	File  string `toml:"file" json:"file" yaml:"file"`
}

// Validate checks every field and reports all failures at once
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, field, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s: "+format, append([]any{field}, args...)...))
		}
	}

	check(c.Gesture.ThresholdPx > 0, "gesture.threshold_px", "must be positive, got %v", c.Gesture.ThresholdPx)
	check(c.Gesture.TapWindowMs > 0, "gesture.tap_window_ms", "must be positive, got %d", c.Gesture.TapWindowMs)

	check(c.Layout.PetalCount >= 3, "layout.petal_count", "must be at least 3, got %d", c.Layout.PetalCount)
	check(c.Layout.PetalDepth >= 0 && c.Layout.PetalDepth <= 1, "layout.petal_depth", "must be within [0, 1], got %v", c.Layout.PetalDepth)
	check(c.Layout.ZoneRadiusPx >= 0, "layout.zone_radius_px", "must not be negative")
	check(c.Layout.SingleZoneOffset >= 0, "layout.single_zone_offset", "must not be negative")

	check(c.Magnet.HighlightMargin >= 1, "magnet.highlight_margin", "must be at least 1, got %v", c.Magnet.HighlightMargin)
	check(c.Magnet.AttractRange > 1, "magnet.attract_range", "must exceed 1, got %v", c.Magnet.AttractRange)
	check(c.Magnet.AttractPull > 0 && c.Magnet.AttractPull <= 1, "magnet.attract_pull", "must be within (0, 1], got %v", c.Magnet.AttractPull)
	check(c.Magnet.PulsePeriodMs > 0, "magnet.pulse_period_ms", "must be positive")
	check(c.Magnet.PulseScale > 1, "magnet.pulse_scale", "must exceed 1, got %v", c.Magnet.PulseScale)

	check(c.Snap.TickMs > 0, "snap.tick_ms", "must be positive")
	check(c.Snap.PxPerMs > 0, "snap.px_per_ms", "must be positive")
	check(c.Snap.MinMs > 0, "snap.min_ms", "must be positive")
	check(c.Snap.MaxMs >= c.Snap.MinMs, "snap.max_ms", "must be at least min_ms (%d), got %d", c.Snap.MinMs, c.Snap.MaxMs)

	check(c.Token.Width > 0 && c.Token.Height > 0, "token", "size must be positive, got %dx%d", c.Token.Width, c.Token.Height)
	check(c.Host.CellWidth > 0 && c.Host.CellHeight > 0, "host", "cell size must be positive, got %dx%d", c.Host.CellWidth, c.Host.CellHeight)

	check(c.Paths.Database != "", "paths.database", "must be set")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume", "must be within [0, 1], got %v", c.Audio.Volume)

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// ApplyEnvOverrides applies SHOTDROP_* variables; unparsable numbers are ignored
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvPrefix + "CAPTURE_DIR"); v != "" {
		c.Paths.CaptureDir = v
	}
	if v := os.Getenv(EnvPrefix + "DATABASE"); v != "" {
		c.Paths.Database = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvPrefix + "AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Enabled = b
		}
	}
	if v := os.Getenv(EnvPrefix + "DRAG_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Gesture.ThresholdPx = f
		}
	}
	if v := os.Getenv(EnvPrefix + "TAP_WINDOW_MS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Gesture.TapWindowMs = n
		}
	}
}

// Tuning converts the behavioral sections into engine constants
func (c *Config) Tuning() engine.Tuning {
	lp := zone.DefaultParams()
	lp.PetalCount = c.Layout.PetalCount
	lp.PetalDepth = c.Layout.PetalDepth
	lp.ZoneRadius = c.Layout.ZoneRadiusPx
	lp.SingleZoneOffset = c.Layout.SingleZoneOffset

	return engine.Tuning{
		DragThreshold: c.Gesture.ThresholdPx,
		TapWindowMs:   c.Gesture.TapWindowMs,
		TokenWidth:    c.Token.Width,
		TokenHeight:   c.Token.Height,
		Layout:        lp,
		Magnet: magnet.Params{
			HighlightMargin: c.Magnet.HighlightMargin,
			AttractRange:    c.Magnet.AttractRange,
			AttractPull:     c.Magnet.AttractPull,
		},
		Snap: snap.Params{
			PxPerMs:      c.Snap.PxPerMs,
			MinDuration:  time.Duration(c.Snap.MinMs) * time.Millisecond,
			MaxDuration:  time.Duration(c.Snap.MaxMs) * time.Millisecond,
			TickInterval: time.Duration(c.Snap.TickMs) * time.Millisecond,
		},
		PulsePeriod: time.Duration(c.Magnet.PulsePeriodMs) * time.Millisecond,
		PulsePeak:   c.Magnet.PulseScale,
	}
}

// Clone returns a copy; the config holds no reference types
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// DataDir returns the per-user data directory, honoring SHOTDROP_DATA_DIR
func DataDir() string {
	if dir := os.Getenv(EnvPrefix + "DATA_DIR"); dir != "" {
		return dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "shotdrop")
	}
	return ".shotdrop"
}

// Path returns the default config file location
func Path() string {
	return filepath.Join(DataDir(), "config.toml")
}
