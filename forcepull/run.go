package forcepull

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/world"
)

// percentTolerance absorbs float32 rounding when comparing the percentage traveled to the trigger.
const percentTolerance = 1e-4

// Anchor is where a pulled object is pulled to, such as a hand or an empty socket.
type Anchor interface {
	// Pose returns the current pose the object is pulled towards.
	Pose() physics.Pose
	// GrabIntent returns false once the anchor no longer wants the object. The pull is aborted then.
	GrabIntent() bool
}

// Target is an object that can be pulled.
type Target interface {
	Handle() world.Handle
	Body() physics.Body
}

// State is the state of a Run.
type State uint8

const (
	Running State = iota
	Succeeded
	Aborted
)

func (s State) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case Aborted:
		return "aborted"
	}
	return "running"
}

// Run is a single force pull of a target towards an anchor. A run ends either Succeeded or Aborted
// and is never restarted: pulling again starts a new run.
type Run struct {
	id      string
	target  Target
	anchor  Anchor
	conf    settings.ForcePull
	dynamic bool

	startDistance float32
	elapsed       float32

	// rotating is set once the rotation trigger fires and never reset.
	rotating bool
	// refDistance and engageAngle are the distance to the anchor and angle to its orientation at
	// the moment rotation engaged.
	refDistance float32
	engageAngle float32

	state  State
	reason string
}

func newRun(target Target, anchor Anchor, conf settings.ForcePull, dynamic bool) *Run {
	return &Run{
		id:            uuid.NewString(),
		target:        target,
		anchor:        anchor,
		conf:          conf,
		dynamic:       dynamic,
		startDistance: anchor.Pose().Position.Sub(target.Body().Position()).Len(),
	}
}

// ID returns the unique ID of the run.
func (r *Run) ID() string {
	return r.id
}

// Target ...
func (r *Run) Target() Target {
	return r.target
}

// Anchor ...
func (r *Run) Anchor() Anchor {
	return r.anchor
}

// Settings returns the settings the run was started with.
func (r *Run) Settings() settings.ForcePull {
	return r.conf
}

// Dynamic returns true if the target is grabbed with a dynamic pose.
func (r *Run) Dynamic() bool {
	return r.dynamic
}

// State ...
func (r *Run) State() State {
	return r.state
}

// Reason returns why the run was aborted, if it was.
func (r *Run) Reason() string {
	return r.reason
}

// StartDistance returns the distance between the target and the anchor when the run started.
func (r *Run) StartDistance() float32 {
	return r.startDistance
}

// Elapsed returns the time the run has been ticked for, in seconds.
func (r *Run) Elapsed() float32 {
	return r.elapsed
}

// RotationEngaged returns true once the target has started rotating towards the anchor.
func (r *Run) RotationEngaged() bool {
	return r.rotating
}

// Threshold returns the distance at which the run succeeds.
func (r *Run) Threshold() float32 {
	if r.dynamic {
		return r.conf.DynamicGrabThreshold
	}
	return r.conf.DistanceThreshold
}

// step advances the run by dt seconds. It returns true if rotation engaged during this step.
func (r *Run) step(dt float32) (engaged bool) {
	if r.state != Running {
		return false
	}
	r.elapsed += dt

	body := r.target.Body()
	goal := r.anchor.Pose()
	pos := body.Position()
	distance := goal.Position.Sub(pos).Len()

	if distance <= r.Threshold() {
		r.succeed(goal)
		return false
	}

	if !r.rotating && r.triggered(distance) {
		r.rotating = true
		r.refDistance = distance
		r.engageAngle = omath.QuatAngle(body.Rotation(), goal.Rotation)
		engaged = true
	}

	vel := r.conf.Drive.LinearVelocity(pos, goal.Position, body.Velocity(), dt)
	vel = omath.ClampLength(vel, r.conf.MaxSpeed)
	body.SetVelocity(vel)

	if r.rotating {
		rot := body.Rotation()
		rate := r.rotationRate(rot, goal.Rotation, vel.Len(), distance)
		next := omath.RotateTowards(rot, goal.Rotation, rate*dt)
		body.SetAngularVelocity(r.conf.SlerpDrive.AngularVelocity(rot, next, body.AngularVelocity(), dt))
	}
	return engaged
}

// rotationRate returns the speed in radians per second at which the target turns from rot towards
// goal, given the speed it travels at and the distance it has left to the anchor.
func (r *Run) rotationRate(rot, goal mgl32.Quat, speed, distance float32) float32 {
	switch r.conf.RotationStyle {
	case settings.RotateOverDistance:
		if r.refDistance > 0 {
			return r.engageAngle * speed / r.refDistance
		}
	case settings.RotateOverRemaining:
		if distance > 0 {
			return omath.QuatAngle(rot, goal) * speed / distance
		}
	}
	return 0
}

// triggered reports whether the rotation trigger of the run fires at the distance passed.
func (r *Run) triggered(distance float32) bool {
	switch r.conf.RotationTrigger {
	case settings.DistanceToHand:
		return distance <= r.conf.RotateTriggerDistance
	case settings.TimeSinceStart:
		return r.elapsed >= r.conf.RotateTriggerTime
	case settings.PercentTraveled:
		if r.startDistance <= 0 {
			return true
		}
		traveled := (r.startDistance - distance) / r.startDistance * 100
		return traveled >= r.conf.RotateTriggerPercent-percentTolerance
	}
	return false
}

// succeed snaps the target to the orientation of the anchor, leaving it where it is.
func (r *Run) succeed(goal physics.Pose) {
	r.state = Succeeded
	r.target.Body().Teleport(physics.Pose{Position: r.target.Body().Position(), Rotation: goal.Rotation})
}

// abort ends the run, capping the velocity the target keeps so a missed pull does not fling it.
func (r *Run) abort(reason string) {
	if r.state != Running {
		return
	}
	r.state = Aborted
	r.reason = reason
	physics.CapVelocity(r.target.Body(), r.conf.MaxMissSpeed, r.conf.MaxMissAngularSpeed)
}
