package tween

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 eases a vector from one value to another over a fixed duration. It is advanced explicitly by
// Tick, so it never outlives the object that owns it. Starting a new tween cancels the previous one
// and continues from wherever the value currently is.
type Vec3 struct {
	from, to mgl32.Vec3
	value    mgl32.Vec3
	duration float32
	elapsed  float32
	active   bool
}

// NewVec3 returns an idle tween resting at value.
func NewVec3(value mgl32.Vec3) *Vec3 {
	return &Vec3{from: value, to: value, value: value}
}

// Start tweens from the current value to target over duration seconds. A duration of zero or less
// jumps straight to target.
func (t *Vec3) Start(target mgl32.Vec3, duration float32) {
	t.from, t.to = t.value, target
	t.elapsed, t.duration = 0, duration
	if duration <= 0 {
		t.value = target
		t.active = false
		return
	}
	t.active = true
}

// Tick advances the tween by dt seconds and returns the new value.
func (t *Vec3) Tick(dt float32) mgl32.Vec3 {
	if !t.active {
		return t.value
	}
	t.elapsed += dt
	progress := math32.Min(t.elapsed/t.duration, 1)
	t.value = t.from.Add(t.to.Sub(t.from).Mul(smoothStep(progress)))
	if progress >= 1 {
		t.value = t.to
		t.active = false
	}
	return t.value
}

// Cancel stops the tween, leaving the value where it currently is.
func (t *Vec3) Cancel() {
	t.active = false
	t.to = t.value
}

// Value ...
func (t *Vec3) Value() mgl32.Vec3 {
	return t.value
}

// Target returns the value the tween is heading to, or the current value if idle.
func (t *Vec3) Target() mgl32.Vec3 {
	return t.to
}

// Active returns true while the tween has not reached its target.
func (t *Vec3) Active() bool {
	return t.active
}

func smoothStep(x float32) float32 {
	return x * x * (3 - 2*x)
}
