package main

import (
	"path/filepath"

	"github.com/lixenwraith/shotdrop/watcher"
)

// captureQueue holds screenshots waiting to be filed; the head is what a drop files
type captureQueue struct {
	items []watcher.Capture
}

// Push appends c unless the same path is already queued
func (q *captureQueue) Push(c watcher.Capture) bool {
	for _, it := range q.items {
		if it.Path == c.Path {
			return false
		}
	}
	q.items = append(q.items, c)
	return true
}

// Head returns the next capture to file
func (q *captureQueue) Head() (watcher.Capture, bool) {
	if len(q.items) == 0 {
		return watcher.Capture{}, false
	}
	return q.items[0], true
}

// Pop removes and returns the head
func (q *captureQueue) Pop() (watcher.Capture, bool) {
	c, ok := q.Head()
	if ok {
		q.items = q.items[1:]
	}
	return c, ok
}

// Rotate moves the head to the back
func (q *captureQueue) Rotate() {
	if len(q.items) < 2 {
		return
	}
	q.items = append(q.items[1:], q.items[0])
}

// Requeue puts c back at the head, used when filing fails
func (q *captureQueue) Requeue(c watcher.Capture) {
	q.items = append([]watcher.Capture{c}, q.items...)
}

func (q *captureQueue) Len() int { return len(q.items) }

// HeadName is the base name of the head capture, or empty
func (q *captureQueue) HeadName() string {
	if c, ok := q.Head(); ok {
		return filepath.Base(c.Path)
	}
	return ""
}
