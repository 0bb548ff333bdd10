package status

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Int(Drops)
	b := r.Int(Drops)
	require.Same(t, a, b)

	a.Add(3)
	assert.Equal(t, int64(3), r.Int(Drops).Load())
}

func TestConcurrentCreate(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Int(Taps).Add(1)
			r.Flag("drag.active").Store(true)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(32), r.Int(Taps).Load())
	assert.Equal(t, 2, r.Count())
}

func TestSnapshotSortedAndFormat(t *testing.T) {
	r := NewRegistry()
	r.Int(Snaps).Store(2)
	r.Int(Drops).Store(5)
	r.Flag("drag.active").Store(true)
	r.SetLabel("token.name", "shot.png")

	snap := r.Snapshot()
	require.Len(t, snap, 4)
	assert.Equal(t, "drag.active", snap[0].Key)
	assert.Equal(t, "true", snap[0].Value)
	assert.Equal(t, "token.name", snap[3].Key)

	assert.Equal(t, "drag.drops=5 | drag.snaps=2", r.Format(" | ", Drops, Snaps, "missing"))
	assert.Equal(t, "shot.png", r.Label("token.name"))
}
