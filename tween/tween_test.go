package tween

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/omath"
	"github.com/stretchr/testify/assert"
)

func TestTweenReachesTarget(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{1, 1, 1})
	tw.Start(mgl32.Vec3{2, 2, 2}, 0.5)
	assert.True(t, tw.Active())

	mid := tw.Tick(0.25)
	assert.True(t, omath.Vec3ApproxEq(mgl32.Vec3{1.5, 1.5, 1.5}, mid), "got %v", mid)

	tw.Tick(0.3)
	assert.False(t, tw.Active())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, tw.Value())
}

func TestRestartContinuesFromCurrentValue(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{})
	tw.Start(mgl32.Vec3{4, 0, 0}, 1)
	tw.Tick(0.5)
	current := tw.Value()

	tw.Start(mgl32.Vec3{}, 1)
	assert.Equal(t, current, tw.Tick(0))
	tw.Tick(1)
	assert.Equal(t, mgl32.Vec3{}, tw.Value())
}

func TestCancelAndInstantStart(t *testing.T) {
	tw := NewVec3(mgl32.Vec3{})
	tw.Start(mgl32.Vec3{1, 0, 0}, 1)
	tw.Tick(0.1)
	tw.Cancel()
	frozen := tw.Value()
	tw.Tick(1)
	assert.Equal(t, frozen, tw.Value())
	assert.False(t, tw.Active())

	tw.Start(mgl32.Vec3{3, 3, 3}, 0)
	assert.False(t, tw.Active())
	assert.Equal(t, mgl32.Vec3{3, 3, 3}, tw.Value())
}
