package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/omath"
)

// Drive holds the parameters of a spring-damper drive. Forces are computed for a unit mass/inertia,
// so they act directly as accelerations.
type Drive struct {
	Spring   float32 `toml:"spring" yaml:"spring"`
	Damper   float32 `toml:"damper" yaml:"damper"`
	MaxForce float32 `toml:"max_force" yaml:"max_force"`
}

// LinearVelocity returns the velocity a body at pos moving at vel should have after dt seconds of
// being driven towards target by d.
func (d Drive) LinearVelocity(pos, target, vel mgl32.Vec3, dt float32) mgl32.Vec3 {
	force := target.Sub(pos).Mul(d.Spring).Sub(vel.Mul(d.Damper))
	force = omath.ClampLength(force, d.MaxForce)
	return vel.Add(force.Mul(dt))
}

// AngularVelocity returns the angular velocity a body with orientation rot spinning at w should
// have after dt seconds of being slerp-driven towards target by d.
func (d Drive) AngularVelocity(rot, target mgl32.Quat, w mgl32.Vec3, dt float32) mgl32.Vec3 {
	torque := omath.QuatError(rot, target).Mul(d.Spring).Sub(w.Mul(d.Damper))
	torque = omath.ClampLength(torque, d.MaxForce)
	return w.Add(torque.Mul(dt))
}

// CapVelocity clamps the linear speed of b to maxSpeed and its angular speed to maxAngularSpeed.
// A negative cap leaves that component untouched.
func CapVelocity(b Body, maxSpeed, maxAngularSpeed float32) {
	b.SetVelocity(omath.ClampLength(b.Velocity(), maxSpeed))
	b.SetAngularVelocity(omath.ClampLength(b.AngularVelocity(), maxAngularSpeed))
}
