package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/stretchr/testify/assert"
)

func TestTickIntegratesVelocity(t *testing.T) {
	e := NewEntity(physics.Pose{Position: mgl32.Vec3{1, 0, 0}})
	e.SetVelocity(mgl32.Vec3{0, 2, 0})
	e.SetAngularVelocity(mgl32.Vec3{0, 0, 1})

	e.Tick(0.5)

	assert.True(t, omath.Vec3ApproxEq(mgl32.Vec3{1, 1, 0}, e.Position()), "got %v", e.Position())
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, e.LastPosition())
	assert.InDelta(t, 0.5, omath.QuatAngle(mgl32.QuatIdent(), e.Rotation()), 1e-4)
}

func TestKinematicEntityDoesNotMove(t *testing.T) {
	e := NewEntity(physics.IdentityPose())
	e.SetVelocity(mgl32.Vec3{1, 1, 1})
	e.SetKinematic(true)

	e.Tick(1)

	assert.Equal(t, mgl32.Vec3{}, e.Position())
	assert.Equal(t, mgl32.Vec3{}, e.Velocity())
}

func TestTeleportStopsEntity(t *testing.T) {
	e := NewEntity(physics.IdentityPose())
	e.SetVelocity(mgl32.Vec3{5, 0, 0})

	target := physics.Pose{Position: mgl32.Vec3{0, 3, 0}, Rotation: mgl32.QuatRotate(1, mgl32.Vec3{0, 1, 0})}
	e.Teleport(target)

	assert.Equal(t, target.Position, e.Position())
	assert.Equal(t, mgl32.Vec3{}, e.Velocity())
	assert.InDelta(t, 0, omath.QuatAngle(target.Rotation, e.Rotation()), 1e-4)
}
