package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/shotdrop/config"
	"github.com/lixenwraith/shotdrop/core"
	"github.com/lixenwraith/shotdrop/service"
	"github.com/lixenwraith/shotdrop/store"
	"github.com/lixenwraith/shotdrop/watcher"
)

// Service names; dependencies decide start order
const (
	svcStore    = "store"
	svcAudio    = "audio"
	svcTerminal = "terminal"
	svcEngine   = "engine"
	svcWatcher  = "watcher"
	svcConfig   = "config"
)

func (a *App) registerServices() error {
	services := []*service.Func{
		{ID: svcStore, OnStart: a.startStore, OnStop: a.stopStore},
		{ID: svcAudio, OnStart: a.startAudio, OnStop: func() error { a.cues.Close(); return nil }},
		{ID: svcTerminal, OnStart: func(context.Context) error { return a.term.Init() },
			OnStop: func() error { a.term.Close(); return nil }},
		{ID: svcEngine, DependsOn: []string{svcStore, svcTerminal},
			OnStart: func(context.Context) error { return a.newEngine() },
			OnStop:  a.stopEngine},
		{ID: svcWatcher, DependsOn: []string{svcEngine}, OnStart: a.startWatcher, OnStop: a.stopWatcher},
		{ID: svcConfig, DependsOn: []string{svcEngine}, OnStart: a.startConfigWatch, OnStop: a.stopConfigWatch},
	}
	for _, svc := range services {
		if err := a.hub.Register(svc); err != nil {
			return err
		}
	}
	return nil
}

// startStore opens the folder database and registers -folder seeds
func (a *App) startStore(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.Paths.Database), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	s, err := store.Open(a.cfg.Paths.Database)
	if err != nil {
		return err
	}
	a.store = s

	for _, seed := range a.seeds {
		f, err := s.EnsureFolder(ctx, seed.name, seed.dir)
		if err != nil {
			return fmt.Errorf("folder %s: %w", seed.dir, err)
		}
		a.log.Info("folder ready", "id", f.ID, "name", f.DisplayName, "path", f.Path)
	}
	return nil
}

func (a *App) stopStore() error {
	a.filings.Wait()
	err := a.store.Close()
	a.store = nil
	return err
}

// startAudio never fails startup; a machine without a sound device runs silent
func (a *App) startAudio(context.Context) error {
	if err := a.cues.Init(); err != nil {
		a.log.Warn("audio disabled", "error", err)
	}
	return nil
}

func (a *App) stopEngine() error {
	if a.eng != nil {
		a.eng.Stop()
	}
	return nil
}

func (a *App) startWatcher(context.Context) error {
	w, err := watcher.New(a.cfg.Paths.CaptureDir, watcher.DefaultSettle)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	a.watch = w

	core.Go(func() {
		for c := range w.Events() {
			if !a.loop.Post(func() { a.onCapture(c) }) {
				return
			}
		}
	})
	core.Go(func() {
		for err := range w.Errors() {
			a.log.Warn("watcher", "error", err)
		}
	})
	return nil
}

func (a *App) stopWatcher() error {
	if a.watch == nil {
		return nil
	}
	return a.watch.Close()
}

// startConfigWatch hot-reloads tuning; a missing config directory only disables reload
func (a *App) startConfigWatch(context.Context) error {
	a.loader.OnChange(func(cfg *config.Config) {
		a.loop.Post(func() { a.onConfig(cfg) })
	})
	if err := a.loader.Watch(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.log.Info("config reload disabled", "path", a.loader.Path())
			return nil
		}
		return err
	}
	core.Go(func() {
		for {
			select {
			case err := <-a.loader.Errors():
				a.log.Warn("config reload rejected", "error", err)
			case <-a.loop.Done():
				return
			}
		}
	})
	return nil
}

func (a *App) stopConfigWatch() error {
	return a.loader.Close()
}
