package config

import (
	"path/filepath"

	"github.com/lixenwraith/shotdrop/engine"
	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/magnet"
	"github.com/lixenwraith/shotdrop/snap"
	"github.com/lixenwraith/shotdrop/zone"
)

// Default cell-to-pixel scale for terminal hosts
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Default returns a configuration that validates as-is
func Default() *Config {
	t := engine.DefaultTuning()
	lp := zone.DefaultParams()
	mp := magnet.DefaultParams()
	sp := snap.DefaultParams()
	dir := DataDir()

	return &Config{
		Gesture: GestureConfig{
			ThresholdPx: input.DefaultDragThreshold,
			TapWindowMs: input.DefaultTapWindowMs,
		},
		Layout: LayoutConfig{
			PetalCount: lp.PetalCount,
			PetalDepth: lp.PetalDepth,
		},
		Magnet: MagnetConfig{
			HighlightMargin: mp.HighlightMargin,
			AttractRange:    mp.AttractRange,
			AttractPull:     mp.AttractPull,
			PulsePeriodMs:   magnet.DefaultPulsePeriod.Milliseconds(),
			PulseScale:      magnet.DefaultPulsePeak,
		},
		Snap: SnapConfig{
			TickMs:  sp.TickInterval.Milliseconds(),
			PxPerMs: sp.PxPerMs,
			MinMs:   sp.MinDuration.Milliseconds(),
			MaxMs:   sp.MaxDuration.Milliseconds(),
		},
		Token: TokenConfig{Width: t.TokenWidth, Height: t.TokenHeight},
		Host:  HostConfig{CellWidth: DefaultCellWidth, CellHeight: DefaultCellHeight},
		Paths: PathsConfig{
			CaptureDir: filepath.Join(dir, "captures"),
			Database:   filepath.Join(dir, "shotdrop.db"),
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "shotdrop.log"),
		},
	}
}
