package state

import (
	"time"

	"github.com/elektrokombinacija/uav-mission-research/internal/algo"
)

// DefaultReplaySpeed compresses playback: planned flights run for tens of
// minutes, so real-time replay is uselessly slow.
const DefaultReplaySpeed = 10.0

// PlaybackState manages flight replay timing.
type PlaybackState struct {
	CurrentTime float64 // Current flight time in seconds
	MaxTime     float64 // Flight duration in seconds
	Speed       float64 // Flight seconds per wall-clock second
	Playing     bool    // Whether replay is active
	lastUpdate  time.Time
}

// NewPlaybackState creates a paused replay over a flight of the given
// duration.
func NewPlaybackState(duration float64) *PlaybackState {
	return &PlaybackState{
		CurrentTime: 0,
		MaxTime:     duration,
		Speed:       DefaultReplaySpeed,
		Playing:     false,
		lastUpdate:  time.Now(),
	}
}

// Retarget swaps in a new flight duration, keeping the replay paused at the
// start. Used after a replan.
func (p *PlaybackState) Retarget(duration float64) {
	p.MaxTime = duration
	p.CurrentTime = 0
	p.Playing = false
}

// TogglePlay toggles replay on/off.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		// Restart if the replay already ran out
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops replay.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to the start.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance moves flight time forward by wall-clock elapsed since the last
// call, scaled by Speed.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	p.lastUpdate = now

	p.CurrentTime += elapsed * p.Speed

	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime seeks to a flight time, clamped to the flight.
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// StepForward pauses and jumps one work quantum ahead.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(p.CurrentTime + algo.DefaultTimeslice)
}

// StepBack pauses and jumps one work quantum back.
func (p *PlaybackState) StepBack() {
	p.Pause()
	p.SetTime(p.CurrentTime - algo.DefaultTimeslice)
}

// SetSpeed sets the replay compression factor.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 120 {
		speed = 120
	}
	p.Speed = speed
}

// Progress returns replay position as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
