package entity

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
)

// Entity is a minimal rigid body that integrates its own velocity. It implements physics.Body and
// stands in for a real physics engine in the scene and in tests.
type Entity struct {
	// mu protects all the following fields.
	mu sync.Mutex
	// position is the current position of the entity in the world.
	position mgl32.Vec3
	// lastPosition is the position of the entity before the last Tick or Teleport.
	lastPosition mgl32.Vec3
	// rotation is the current orientation of the entity.
	rotation mgl32.Quat
	// velocity is the linear velocity of the entity in units per second.
	velocity mgl32.Vec3
	// angularVelocity is the angular velocity of the entity in radians per second.
	angularVelocity mgl32.Vec3
	// scale is the local scale of the entity, written by sockets when they resize what they hold.
	scale mgl32.Vec3
	// kinematic entities ignore their velocity when ticked.
	kinematic bool
}

// NewEntity creates a new entity at the pose passed.
func NewEntity(pose physics.Pose) *Entity {
	if pose.Rotation == (mgl32.Quat{}) {
		pose.Rotation = mgl32.QuatIdent()
	}
	return &Entity{
		position:     pose.Position,
		lastPosition: pose.Position,
		rotation:     pose.Rotation,
		scale:        mgl32.Vec3{1, 1, 1},
	}
}

// Position returns the position of the entity.
func (e *Entity) Position() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// LastPosition returns the last position of the entity.
func (e *Entity) LastPosition() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPosition
}

// Rotation returns the rotation of the entity.
func (e *Entity) Rotation() mgl32.Quat {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rotation
}

// Pose returns the position and rotation of the entity.
func (e *Entity) Pose() physics.Pose {
	e.mu.Lock()
	defer e.mu.Unlock()
	return physics.Pose{Position: e.position, Rotation: e.rotation}
}

// Velocity ...
func (e *Entity) Velocity() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.velocity
}

// AngularVelocity ...
func (e *Entity) AngularVelocity() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.angularVelocity
}

// SetVelocity ...
func (e *Entity) SetVelocity(v mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.velocity = v
}

// SetAngularVelocity ...
func (e *Entity) SetAngularVelocity(w mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.angularVelocity = w
}

// Teleport moves the entity to the pose passed and stops it.
func (e *Entity) Teleport(pose physics.Pose) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastPosition = e.position
	e.position = pose.Position
	e.rotation = pose.Rotation.Normalize()
	e.velocity = mgl32.Vec3{}
	e.angularVelocity = mgl32.Vec3{}
}

// Scale returns the local scale of the entity.
func (e *Entity) Scale() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scale
}

// SetScale updates the local scale of the entity.
func (e *Entity) SetScale(scale mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scale = scale
}

// Kinematic returns true if the entity is not moved by its own velocity.
func (e *Entity) Kinematic() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.kinematic
}

// SetKinematic freezes or unfreezes the entity. Socketed objects are frozen in place.
func (e *Entity) SetKinematic(kinematic bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.kinematic = kinematic
	if kinematic {
		e.velocity = mgl32.Vec3{}
		e.angularVelocity = mgl32.Vec3{}
	}
}

// Tick integrates the velocity of the entity over dt seconds.
func (e *Entity) Tick(dt float32) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastPosition = e.position
	if e.kinematic {
		return
	}
	e.position = e.position.Add(e.velocity.Mul(dt))
	e.rotation = omath.IntegrateRotation(e.rotation, e.angularVelocity, dt)
}
