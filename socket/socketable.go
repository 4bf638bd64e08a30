package socket

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/world"
)

// Grabbable is an object that can be picked up by a hand or taken by a socket.
type Grabbable interface {
	// Handle returns the weak reference to the grabbable in the world.
	Handle() world.Handle
	// Socketable returns the socket facet of the grabbable, or nil if it cannot be socketed.
	Socketable() *Socketable
	// Body returns the rigid body the grabbable is simulated with.
	Body() physics.Body
}

// Scaler is implemented by grabbables whose scale can be changed by a socket.
type Scaler interface {
	Scale() mgl32.Vec3
	SetScale(scale mgl32.Vec3)
}

// Freezer is implemented by grabbables that can be made kinematic while socketed.
type Freezer interface {
	SetKinematic(kinematic bool)
}

// Socketable is the socket facet of a grabbable: how it sits in a socket, how it is resized and
// which cues play when it is attached or detached.
type Socketable struct {
	// Grabbable is the handle of the grabbable owning this facet.
	Grabbable world.Handle
	// Tag is matched by TagFilter.
	Tag string
	// Anchor is the pose of the grabbable relative to the socket once attached.
	Anchor physics.Pose
	// Scale is a uniform scale applied while socketed. Zero is treated as 1.
	Scale float32
	// CounterScale is multiplied onto the socketed scale per axis, counteracting a scaled parent.
	// A zero vector is treated as {1, 1, 1}.
	CounterScale mgl32.Vec3
	// Bounds overrides the bounds of the grabbable, relative to its position, used for fitting,
	// hovering and BoundsFilter.
	Bounds *cube.BBox
	// AttachCue and DetachCue override the cues of the socket if set.
	AttachCue, DetachCue string
	// Linked holds grabbables that belong to this one, such as the second grip of a rifle. The
	// socketable cannot be socketed while any of them is held.
	Linked []world.Handle
}

// NewSocketable returns a socketable for the grabbable passed with a neutral anchor and scale.
func NewSocketable(grabbable world.Handle, tag string) *Socketable {
	return &Socketable{
		Grabbable:    grabbable,
		Tag:          tag,
		Anchor:       physics.IdentityPose(),
		Scale:        1,
		CounterScale: mgl32.Vec3{1, 1, 1},
	}
}

// AnyLinkedHeld returns true if any linked grabbable is currently held. It asks the registry every
// time it is called.
func (s *Socketable) AnyLinkedHeld(r world.Registry) bool {
	if r == nil {
		return false
	}
	for _, h := range s.Linked {
		if h != world.Nil && h != s.Grabbable && r.Held(h) {
			return true
		}
	}
	return false
}

// Size returns the extents of the bounds override, if one is set.
func (s *Socketable) Size() (mgl32.Vec3, bool) {
	if s.Bounds == nil {
		return mgl32.Vec3{}, false
	}
	return mgl32.Vec3{s.Bounds.Width(), s.Bounds.Height(), s.Bounds.Length()}, true
}

// anchor returns the anchor with a valid rotation.
func (s *Socketable) anchor() physics.Pose {
	a := s.Anchor
	if a.Rotation == (mgl32.Quat{}) {
		a.Rotation = mgl32.QuatIdent()
	}
	return a
}

// scale returns the per-axis scale of the socketable multiplied by the fit factor passed.
func (s *Socketable) scale(fit float32) mgl32.Vec3 {
	uniform := s.Scale
	if uniform == 0 {
		uniform = 1
	}
	uniform *= fit

	counter := s.CounterScale
	if counter == (mgl32.Vec3{}) {
		counter = mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Vec3{uniform * counter[0], uniform * counter[1], uniform * counter[2]}
}
