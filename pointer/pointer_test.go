package pointer

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIdleDriftAfterThreshold(t *testing.T) {
	start := time.Unix(1000, 0)
	tr := NewTracker(start)

	now := start.Add(3000 * time.Millisecond)
	tr.Step(3.0, now)
	assert.Equal(t, IdleTarget(3.0), tr.Target())
	assert.InDelta(t, 0.5+0.14*0.8521, float64(tr.Target()[0]), 1e-3)
}

func TestNoDriftBeforeThreshold(t *testing.T) {
	start := time.Unix(1000, 0)
	tr := NewTracker(start)
	tr.Step(2.0, start.Add(2000*time.Millisecond))
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, tr.Target())
}

func TestObserveSnapsTargetAndStopsDrift(t *testing.T) {
	start := time.Unix(1000, 0)
	tr := NewTracker(start)
	tr.Step(3.0, start.Add(3*time.Second))
	assert.True(t, tr.Idle(start.Add(3*time.Second)))

	at := start.Add(3100 * time.Millisecond)
	tr.Observe(mgl32.Vec2{0.9, 0.2}, at)
	assert.Equal(t, mgl32.Vec2{0.9, 0.2}, tr.Target())

	tr.Step(3.2, at.Add(100*time.Millisecond))
	assert.Equal(t, mgl32.Vec2{0.9, 0.2}, tr.Target())

	later := at.Add(IdleThreshold + time.Millisecond)
	tr.Step(6.0, later)
	assert.Equal(t, IdleTarget(6.0), tr.Target())
}

func TestSmoothingIsConstantPerFrame(t *testing.T) {
	now := time.Unix(1000, 0)
	tr := NewTracker(now)
	tr.Observe(mgl32.Vec2{1, 0.5}, now)

	got := tr.Step(0, now)
	assert.InDelta(t, 0.5+0.5*Smoothing, float64(got[0]), 1e-6)
	assert.InDelta(t, 0.5, float64(got[1]), 1e-6)

	prev := got
	for i := 0; i < 50; i++ {
		cur := tr.Step(0, now)
		assert.Greater(t, cur[0], prev[0])
		assert.LessOrEqual(t, cur[0], float32(1))
		prev = cur
	}
	assert.InDelta(t, 1.0, float64(prev[0]), 0.01)
}

func TestIdleTrackerDriftsImmediately(t *testing.T) {
	tr := NewIdleTracker()
	assert.True(t, tr.Idle(time.Time{}))
	tr.Step(1.5, time.Time{})
	assert.Equal(t, IdleTarget(1.5), tr.Target())
}
