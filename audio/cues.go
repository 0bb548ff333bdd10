// Package audio plays short synthesized cues for drag-and-drop feedback
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies a feedback sound
type Cue int

const (
	CueTap     Cue = iota // Token tapped
	CueDrop               // Capture filed into a zone
	CueSnap               // Token released outside every zone
	CueCapture            // New screenshot arrived
	CueError              // Filing failed
	cueCount
)

var cueNames = [cueCount]string{"tap", "drop", "snap", "capture", "error"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}

// Synthesize builds the streamer for a cue at the given linear volume
func Synthesize(c Cue, volume float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueTap:
		s = tone(660, 60*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, WaveSine, rate)
	case CueDrop:
		// Rising fourth, E5 then A5
		s = beep.Seq(
			tone(659.25, 70*time.Millisecond, 5*time.Millisecond, 30*time.Millisecond, WaveSine, rate),
			tone(880, 140*time.Millisecond, 5*time.Millisecond, 100*time.Millisecond, WaveSine, rate),
		)
	case CueSnap:
		s = tone(330, 50*time.Millisecond, 2*time.Millisecond, 35*time.Millisecond, WaveTriangle, rate)
	case CueCapture:
		// Bell: fundamental plus octave overtone
		d := 250 * time.Millisecond
		s = beep.Mix(
			newVolume(tone(880, d, 5*time.Millisecond, 200*time.Millisecond, WaveSine, rate), 0.7),
			newVolume(tone(1760, d, 5*time.Millisecond, 120*time.Millisecond, WaveSine, rate), 0.3),
		)
	case CueError:
		s = tone(110, 150*time.Millisecond, 5*time.Millisecond, 50*time.Millisecond, WaveSquare, rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}

// Cues plays feedback sounds on the default output device
// Every method is a no-op until Init succeeds, so a machine without audio still runs
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	enabled     bool
	initialized bool
}

// NewCues creates a player; volume is linear in [0, 1]
func NewCues(enabled bool, volume float64) *Cues {
	return &Cues{
		mixer:   &beep.Mixer{},
		volume:  volume,
		enabled: enabled,
	}
}

// Init opens the speaker; disabled cues skip it
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Play queues a cue without blocking on playback
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s := Synthesize(cue, c.volume, sampleRate)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// SetVolume changes the volume for subsequent cues
func (c *Cues) SetVolume(v float64) {
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()
}

// Active reports whether cues reach the speaker
func (c *Cues) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Close silences pending cues
// beep offers no way to reopen the speaker, so Close is final
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
	c.enabled = false
}
