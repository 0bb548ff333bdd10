package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type journal struct{ entries []string }

func (j *journal) svc(name string, deps ...string) *Func {
	return &Func{
		ID:        name,
		DependsOn: deps,
		OnStart: func(context.Context) error {
			j.entries = append(j.entries, "start "+name)
			return nil
		},
		OnStop: func() error {
			j.entries = append(j.entries, "stop "+name)
			return nil
		},
	}
}

func TestStartsInDependencyOrder(t *testing.T) {
	j := &journal{}
	h := NewHub(nil)
	require.NoError(t, h.Register(j.svc("host", "store", "audio")))
	require.NoError(t, h.Register(j.svc("watcher", "store")))
	require.NoError(t, h.Register(j.svc("store")))
	require.NoError(t, h.Register(j.svc("audio")))

	require.NoError(t, h.StartAll(context.Background()))
	assert.Equal(t, []string{"start audio", "start store", "start host", "start watcher"}, j.entries)

	j.entries = nil
	h.StopAll()
	assert.Equal(t, []string{"stop watcher", "stop host", "stop store", "stop audio"}, j.entries)

	j.entries = nil
	h.StopAll()
	assert.Empty(t, j.entries, "second StopAll has nothing to stop")
}

func TestStartFailureRollsBack(t *testing.T) {
	j := &journal{}
	h := NewHub(nil)
	require.NoError(t, h.Register(j.svc("a")))
	require.NoError(t, h.Register(j.svc("b", "a")))
	boom := errors.New("boom")
	require.NoError(t, h.Register(&Func{
		ID:        "c",
		DependsOn: []string{"b"},
		OnStart:   func(context.Context) error { return boom },
	}))

	err := h.StartAll(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, j.entries)
}

func TestRegisterDuplicate(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(&Func{ID: "x"}))
	assert.Error(t, h.Register(&Func{ID: "x"}))
}

func TestUnknownDependency(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(&Func{ID: "x", DependsOn: []string{"ghost"}}))
	err := h.StartAll(context.Background())
	assert.ErrorContains(t, err, "ghost")
}

func TestCycle(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(&Func{ID: "a", DependsOn: []string{"b"}}))
	require.NoError(t, h.Register(&Func{ID: "b", DependsOn: []string{"a"}}))
	_, err := h.Order()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestMustGet(t *testing.T) {
	h := NewHub(nil)
	f := &Func{ID: "store"}
	require.NoError(t, h.Register(f))

	assert.Same(t, f, MustGet[*Func](h, "store"))
	assert.Panics(t, func() { MustGet[*Func](h, "missing") })
	assert.Panics(t, func() { MustGet[*Hub](h, "store") })
	assert.Equal(t, []string{"store"}, h.Names())
}
