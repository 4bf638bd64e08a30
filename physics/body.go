package physics

import "github.com/go-gl/mathgl/mgl32"

// Pose is a position and orientation in world space.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// Mul returns the pose obtained by applying local relative to p, as if local was a child of p.
func (p Pose) Mul(local Pose) Pose {
	return Pose{
		Position: p.Position.Add(p.Rotation.Rotate(local.Position)),
		Rotation: p.Rotation.Mul(local.Rotation).Normalize(),
	}
}

// Body bridges a rigid body simulated by the physics engine. grip never integrates bodies itself:
// it reads their state and writes target velocities, which the engine's solver applies.
type Body interface {
	Position() mgl32.Vec3
	Rotation() mgl32.Quat
	Velocity() mgl32.Vec3
	AngularVelocity() mgl32.Vec3

	SetVelocity(v mgl32.Vec3)
	SetAngularVelocity(w mgl32.Vec3)
	// Teleport moves the body to the pose passed without sweeping, as a snap would.
	Teleport(pose Pose)
}

// Contact is the contact data the physics engine reports with a penetration event.
type Contact struct {
	Point            mgl32.Vec3
	Normal           mgl32.Vec3
	RelativeVelocity mgl32.Vec3
}
