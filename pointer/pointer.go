// Package pointer keeps the smoothed cursor position fed to u_mouse.
//
// Positions are normalized viewport coordinates with the origin at the bottom
// left. The current position never jumps: each Step moves it a fixed fraction
// of the way toward the target, regardless of frame duration.
package pointer

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// IdleThreshold is how long without real input before idle drift takes over.
	IdleThreshold = 2400 * time.Millisecond
	// Smoothing is the per-frame blend factor toward the target.
	Smoothing = 0.12
)

var center = mgl32.Vec2{0.5, 0.5}

type Tracker struct {
	target    mgl32.Vec2
	current   mgl32.Vec2
	lastInput time.Time
}

// NewTracker starts centered, treating now as the most recent input so drift
// only begins after IdleThreshold.
func NewTracker(now time.Time) *Tracker {
	return &Tracker{target: center, current: center, lastInput: now}
}

// NewIdleTracker starts centered and drifting immediately.
func NewIdleTracker() *Tracker {
	return &Tracker{target: center, current: center}
}

// Observe records real pointer input. The target snaps to it right away.
func (t *Tracker) Observe(pos mgl32.Vec2, now time.Time) {
	t.target = pos
	t.lastInput = now
}

// Idle reports whether drift is active at now.
func (t *Tracker) Idle(now time.Time) bool {
	return t.lastInput.IsZero() || now.Sub(t.lastInput) > IdleThreshold
}

// Step advances one frame and returns the smoothed position. elapsed is the
// render clock in seconds and drives the drift.
func (t *Tracker) Step(elapsed float64, now time.Time) mgl32.Vec2 {
	if t.Idle(now) {
		t.target = IdleTarget(elapsed)
	}
	t.current = t.current.Add(t.target.Sub(t.current).Mul(Smoothing))
	return t.current
}

func (t *Tracker) Target() mgl32.Vec2  { return t.target }
func (t *Tracker) Current() mgl32.Vec2 { return t.current }

// IdleTarget is the synthetic pointer: two slow sinusoids at different rates.
func IdleTarget(elapsed float64) mgl32.Vec2 {
	return mgl32.Vec2{
		float32(0.5 + math.Sin(elapsed*0.34)*0.14),
		float32(0.5 + math.Cos(elapsed*0.28)*0.11),
	}
}
