package scene

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/entity"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/socket"
	"github.com/oomph-ac/grip/world"
)

// Item is a grabbable object in the scene, simulated by an entity.
type Item struct {
	*entity.Entity

	name   string
	handle world.Handle
	facet  *socket.Socketable
	// DynamicPose is true if hands grab the item wherever they touch it instead of at a fixed pose.
	DynamicPose bool
}

// Name ...
func (i *Item) Name() string {
	return i.name
}

// Handle ...
func (i *Item) Handle() world.Handle {
	return i.handle
}

// Socketable returns the socket facet of the item.
func (i *Item) Socketable() *socket.Socketable {
	return i.facet
}

// Body ...
func (i *Item) Body() physics.Body {
	return i.Entity
}

// bounds returns the bounds of the item in world space. Items without a bounds override are treated
// as a point.
func (i *Item) bounds() cube.BBox {
	pos := i.Position()
	if b := i.facet.Bounds; b != nil {
		return b.Translate(pos)
	}
	return omath.BoxAround(pos, mgl32.Vec3{})
}

// Hand is a tracked hand. It is the anchor items are force pulled to.
type Hand struct {
	name   string
	handle world.Handle
	pose   physics.Pose
	intent bool
	held   *Item
}

// Name ...
func (h *Hand) Name() string {
	return h.name
}

// Handle ...
func (h *Hand) Handle() world.Handle {
	return h.handle
}

// Pose ...
func (h *Hand) Pose() physics.Pose {
	return h.pose
}

// SetPose moves the hand. A held item follows on the next physics step.
func (h *Hand) SetPose(pose physics.Pose) {
	h.pose = pose
}

// GrabIntent returns true while the grab button of the hand is pressed.
func (h *Hand) GrabIntent() bool {
	return h.intent
}

// SetGrabIntent presses or releases the grab button of the hand.
func (h *Hand) SetGrabIntent(intent bool) {
	h.intent = intent
}

// Held returns the item held by the hand, if any.
func (h *Hand) Held() (*Item, bool) {
	return h.held, h.held != nil
}
