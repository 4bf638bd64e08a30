package socket

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/assert"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/tween"
	"github.com/oomph-ac/grip/world"
	"github.com/sirupsen/logrus"
)

// State is the occupancy state of a socket.
type State uint8

const (
	Empty State = iota
	Occupied
)

func (s State) String() string {
	if s == Occupied {
		return "occupied"
	}
	return "empty"
}

// Options holds the configuration of a new Socket.
type Options struct {
	// Name identifies the socket. Its handle is world.HandleOf(Name).
	Name string
	// Pose is the pose of the socket in world space.
	Pose physics.Pose
	// Filters must all accept a socketable for it to enter. No filters accept every socketable.
	Filters []Filter
	// Settings holds the hover, fit and cue settings of the socket.
	Settings settings.Socket
	// Registry is used to check linked grabbables and the liveness of the occupant. If it is a
	// world.Tracker, the socket also records itself as the holder of its occupant.
	Registry world.Registry
	// Sink receives the events of the socket. Nil drops them.
	Sink event.Sink
	// Log is the logger of the socket. Nil discards output.
	Log logrus.FieldLogger
}

// Socket is a receptacle that holds at most one grabbable at a time.
type Socket struct {
	handle   world.Handle
	name     string
	pose     physics.Pose
	filters  []Filter
	conf     settings.Socket
	registry world.Registry
	sink     event.Sink
	log      logrus.FieldLogger

	state    State
	occupant Grabbable
	// previousScale is the scale the occupant had before it was attached.
	previousScale mgl32.Vec3

	hovering map[world.Handle]struct{}
	hover    *tween.Vec3
}

// New creates an empty Socket using the options passed.
func New(opts Options) *Socket {
	if opts.Sink == nil {
		opts.Sink = event.NopSink{}
	}
	if opts.Log == nil {
		opts.Log = internal.DiscardLogger()
	}
	if opts.Pose.Rotation == (mgl32.Quat{}) {
		opts.Pose.Rotation = mgl32.QuatIdent()
	}
	return &Socket{
		handle:   world.HandleOf(opts.Name),
		name:     opts.Name,
		pose:     opts.Pose,
		filters:  opts.Filters,
		conf:     opts.Settings.OrDefault(),
		registry: opts.Registry,
		sink:     opts.Sink,
		log:      opts.Log.WithField("socket", opts.Name),
		hovering: make(map[world.Handle]struct{}),
		hover:    tween.NewVec3(mgl32.Vec3{1, 1, 1}),
	}
}

// Handle ...
func (s *Socket) Handle() world.Handle {
	return s.handle
}

// Name ...
func (s *Socket) Name() string {
	return s.name
}

// State ...
func (s *Socket) State() State {
	return s.state
}

// Occupant returns the grabbable in the socket, if any.
func (s *Socket) Occupant() (Grabbable, bool) {
	return s.occupant, s.occupant != nil
}

// Pose returns the pose of the socket.
func (s *Socket) Pose() physics.Pose {
	return s.pose
}

// GrabIntent reports whether the socket still wants to receive a pulled object, which is the case
// for as long as it is empty.
func (s *Socket) GrabIntent() bool {
	return s.state == Empty
}

// SetPose moves the socket, carrying its occupant along with it.
func (s *Socket) SetPose(pose physics.Pose) {
	if pose.Rotation == (mgl32.Quat{}) {
		pose.Rotation = mgl32.QuatIdent()
	}
	s.pose = pose
	if s.occupant != nil {
		s.occupant.Body().Teleport(s.attachPose(s.occupant.Socketable()))
	}
}

// CanRemove returns false if the occupant is locked into the socket.
func (s *Socket) CanRemove() bool {
	return s.conf.CanRemove
}

// SetCanRemove locks or unlocks the occupant of the socket.
func (s *Socket) SetCanRemove(canRemove bool) {
	s.conf.CanRemove = canRemove
}

// VisualScale returns the current hover scale of the socket's visual.
func (s *Socket) VisualScale() mgl32.Vec3 {
	return s.hover.Value()
}

// IsValid returns true if the grabbable passed may enter the socket: it must be socketable, pass
// every filter of the socket and none of its linked grabbables may be held.
func (s *Socket) IsValid(g Grabbable) bool {
	if g == nil {
		return false
	}
	sc := g.Socketable()
	if sc == nil {
		return false
	}
	for _, f := range s.filters {
		if !f.IsValid(sc) {
			return false
		}
	}
	return !sc.AnyLinkedHeld(s.registry)
}

// TryGrab attaches the grabbable to the socket if the socket is empty, the grabbable is valid and
// nothing else holds it. The grabbable is snapped to the socket, stopped, frozen and scaled. TryGrab
// returns false and leaves the socket untouched otherwise.
func (s *Socket) TryGrab(g Grabbable) bool {
	if s.state != Empty || !s.IsValid(g) || s.heldElsewhere(g.Handle()) {
		return false
	}
	sc := g.Socketable()

	s.occupant = g
	s.state = Occupied
	s.checkOccupancy()

	pose := s.attachPose(sc)
	body := g.Body()
	body.Teleport(pose)
	body.SetVelocity(mgl32.Vec3{})
	body.SetAngularVelocity(mgl32.Vec3{})
	if f, ok := g.(Freezer); ok {
		f.SetKinematic(true)
	}

	scale := s.attachScale(sc)
	if scaler, ok := g.(Scaler); ok {
		s.previousScale = scaler.Scale()
		scaler.SetScale(scale)
	}
	if tracker, ok := s.registry.(world.Tracker); ok {
		tracker.Hold(g.Handle(), s.handle)
	}

	s.hovering = make(map[world.Handle]struct{})
	s.hover.Start(mgl32.Vec3{1, 1, 1}, s.conf.HoverScaleDuration)

	s.log.WithField("grabbable", g.Handle()).Debug("grabbable attached")
	s.sink.Emit(&event.SocketAttached{
		Socket:    s.handle,
		Grabbable: g.Handle(),
		Pose:      pose,
		Scale:     scale,
		Cue:       pick(sc.AttachCue, s.conf.AttachCue),
	})
	return true
}

// Release detaches the occupant of the socket. It returns false if the socket is empty or its
// occupant is locked in.
func (s *Socket) Release() bool {
	if s.state != Occupied {
		return false
	}
	if !s.conf.CanRemove {
		s.log.Debug("release refused, socket is locked")
		return false
	}
	s.detach(event.ReleaseReasonReleased)
	return true
}

// HoverEnter notifies the socket that a grabbable started hovering over it. The socket's visual
// scales up while an empty socket is hovered by a grabbable it would accept.
func (s *Socket) HoverEnter(g Grabbable) {
	if g == nil {
		return
	}
	if _, ok := s.hovering[g.Handle()]; ok {
		return
	}
	s.hovering[g.Handle()] = struct{}{}
	s.sink.Emit(&event.SocketHoverEnter{Socket: s.handle, Grabbable: g.Handle()})

	if s.state == Empty && s.IsValid(g) {
		h := s.conf.HoverScale
		s.hover.Start(mgl32.Vec3{h, h, h}, s.conf.HoverScaleDuration)
	}
}

// IsHovered returns true if the grabbable passed is hovering over the socket.
func (s *Socket) IsHovered(h world.Handle) bool {
	_, ok := s.hovering[h]
	return ok
}

// HoverExit notifies the socket that a grabbable stopped hovering over it.
func (s *Socket) HoverExit(g Grabbable) {
	if g == nil {
		return
	}
	if _, ok := s.hovering[g.Handle()]; !ok {
		return
	}
	delete(s.hovering, g.Handle())
	s.sink.Emit(&event.SocketHoverExit{Socket: s.handle, Grabbable: g.Handle()})

	if len(s.hovering) == 0 {
		s.hover.Start(mgl32.Vec3{1, 1, 1}, s.conf.HoverScaleDuration)
	}
}

// Tick advances the hover tween and frees the socket if its occupant no longer exists. Locked
// sockets are freed as well.
func (s *Socket) Tick(dt float32) {
	s.hover.Tick(dt)
	if s.state == Occupied && s.registry != nil && !s.registry.Alive(s.occupant.Handle()) {
		s.log.WithField("grabbable", s.occupant.Handle()).Debug("occupant lost, freeing socket")
		s.detach(event.ReleaseReasonOccupantLost)
	}
}

func (s *Socket) detach(reason string) {
	g := s.occupant
	sc := g.Socketable()

	if f, ok := g.(Freezer); ok {
		f.SetKinematic(false)
	}
	if scaler, ok := g.(Scaler); ok && s.previousScale != (mgl32.Vec3{}) {
		scaler.SetScale(s.previousScale)
	}
	if tracker, ok := s.registry.(world.Tracker); ok {
		if holder, held := holderOf(tracker, g.Handle()); !held || holder == s.handle {
			tracker.Drop(g.Handle())
		}
	}

	s.occupant = nil
	s.previousScale = mgl32.Vec3{}
	s.state = Empty
	s.checkOccupancy()

	var cue string
	if sc != nil {
		cue = pick(sc.DetachCue, s.conf.DetachCue)
	} else {
		cue = s.conf.DetachCue
	}
	s.sink.Emit(&event.SocketReleased{Socket: s.handle, Grabbable: g.Handle(), Reason: reason, Cue: cue})
}

// attachPose returns the pose a socketable is snapped to in the socket.
func (s *Socket) attachPose(sc *Socketable) physics.Pose {
	return s.pose.Mul(sc.anchor())
}

// attachScale returns the scale a socketable is given in the socket.
func (s *Socket) attachScale(sc *Socketable) mgl32.Vec3 {
	fit := float32(1)
	if size, ok := sc.Size(); ok && s.conf.ScaleToFit && s.conf.FitSize > 0 {
		if largest := omath.MaxComponent(size); largest > 0 {
			fit = s.conf.FitSize / largest
		}
	}
	return sc.scale(fit)
}

func (s *Socket) checkOccupancy() {
	assert.IsTrue((s.occupant != nil) == (s.state == Occupied), "socket %s: occupant set in state %s", s.name, s.state)
}

// heldElsewhere returns true if a live holder other than the socket holds h. An object can only be
// in one hand or socket at a time.
func (s *Socket) heldElsewhere(h world.Handle) bool {
	tracker, ok := s.registry.(world.Tracker)
	if !ok {
		return false
	}
	holder, held := holderOf(tracker, h)
	return held && holder != s.handle && tracker.Alive(holder)
}

// holderOf returns the holder recorded for h if the tracker can report it.
func holderOf(t world.Tracker, h world.Handle) (world.Handle, bool) {
	if w, ok := t.(interface {
		Holder(h world.Handle) (world.Handle, bool)
	}); ok {
		return w.Holder(h)
	}
	return world.Nil, false
}

func pick(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
