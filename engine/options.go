package engine

import (
	"log/slog"
	"time"

	"github.com/lixenwraith/shotdrop/clock"
	"github.com/lixenwraith/shotdrop/input"
	"github.com/lixenwraith/shotdrop/magnet"
	"github.com/lixenwraith/shotdrop/overlay"
	"github.com/lixenwraith/shotdrop/snap"
	"github.com/lixenwraith/shotdrop/status"
	"github.com/lixenwraith/shotdrop/zone"
)

// Folder is one destination in display order
type Folder struct {
	ID          int64
	DisplayName string
}

// FolderSource lists destination folders; order drives zone order
type FolderSource interface {
	ListFolders() ([]Folder, error)
}

// FolderSourceFunc adapts a function to FolderSource
type FolderSourceFunc func() ([]Folder, error)

func (f FolderSourceFunc) ListFolders() ([]Folder, error) { return f() }

// Callbacks are dispatched on the event loop; nil entries are skipped
type Callbacks struct {
	OnTap              func()
	OnDrop             func(zoneID int64)
	OnDragStateChanged func(dragging bool)
}

// Tuning collects every behavioral constant the engine uses
type Tuning struct {
	DragThreshold float64
	TapWindowMs   int64

	TokenWidth  int
	TokenHeight int

	Layout zone.Params
	Magnet magnet.Params
	Snap   snap.Params

	PulsePeriod time.Duration
	PulsePeak   float64
}

// DefaultTuning returns stock behavior
func DefaultTuning() Tuning {
	return Tuning{
		DragThreshold: input.DefaultDragThreshold,
		TapWindowMs:   input.DefaultTapWindowMs,
		TokenWidth:    96,
		TokenHeight:   64,
		Layout:        zone.DefaultParams(),
		Magnet:        magnet.DefaultParams(),
		Snap:          snap.DefaultParams(),
		PulsePeriod:   magnet.DefaultPulsePeriod,
		PulsePeak:     magnet.DefaultPulsePeak,
	}
}

// Options wires an Engine to its collaborators
type Options struct {
	Host      overlay.WindowHost // Required
	Scheduler clock.Scheduler    // Required
	Folders   FolderSource
	Callbacks Callbacks
	Tuning    Tuning
	Status    *status.Registry
	Logger    *slog.Logger
}
