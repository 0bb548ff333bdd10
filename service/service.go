// Package service runs long-lived infrastructure (database, watchers, audio,
// terminal) in dependency order
package service

import "context"

// Service defines the lifecycle of an infrastructure subsystem
//
// Lifecycle:
//  1. Construction
//  2. Start(ctx) - acquire resources, launch goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Start before this one
	Dependencies() []string

	// Start begins service operation; ctx is cancelled on shutdown
	Start(ctx context.Context) error

	// Stop halts the service; must be idempotent
	Stop() error
}

// Func adapts plain functions to Service
type Func struct {
	ID        string
	DependsOn []string
	OnStart   func(ctx context.Context) error
	OnStop    func() error
}

func (f *Func) Name() string           { return f.ID }
func (f *Func) Dependencies() []string { return f.DependsOn }

func (f *Func) Start(ctx context.Context) error {
	if f.OnStart == nil {
		return nil
	}
	return f.OnStart(ctx)
}

func (f *Func) Stop() error {
	if f.OnStop == nil {
		return nil
	}
	return f.OnStop()
}
