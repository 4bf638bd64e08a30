package stab

import (
	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/world"
	"github.com/sirupsen/logrus"
)

// Options holds the configuration of a new Stabbable.
type Options struct {
	// Name identifies the stabbable. Its handle is world.HandleOf(Name).
	Name string
	// Body is the body of the stabbable, used to derive its velocity.
	Body physics.Body
	// Settings is the settings profile of the stabbable.
	Settings settings.Stabbable
	// Registry is used to sweep stabbers that no longer exist. Nil disables the sweep.
	Registry world.Registry
	Sink     event.Sink
	Log      logrus.FieldLogger
}

// penetration is the state of a single stabber inside a stabbable.
type penetration struct {
	contact physics.Contact
	depth   float32
	full    bool
}

// Stabbable is an object that can be penetrated by stabbers, such as a target hit by a knife. It
// tracks which stabbers are currently inside it and its own velocity.
type Stabbable struct {
	handle   world.Handle
	name     string
	body     physics.Body
	conf     settings.Stabbable
	registry world.Registry
	sink     event.Sink
	log      logrus.FieldLogger

	stabbers *orderedmap.OrderedMap[world.Handle, *penetration]

	lastPosition mgl32.Vec3
	velocity     mgl32.Vec3
}

// New creates a Stabbable with no stabbers inside it.
func New(opts Options) *Stabbable {
	if opts.Sink == nil {
		opts.Sink = event.NopSink{}
	}
	if opts.Log == nil {
		opts.Log = internal.DiscardLogger()
	}
	s := &Stabbable{
		handle:   world.HandleOf(opts.Name),
		name:     opts.Name,
		body:     opts.Body,
		conf:     opts.Settings.OrDefault(),
		registry: opts.Registry,
		sink:     opts.Sink,
		log:      opts.Log.WithField("stabbable", opts.Name),
		stabbers: orderedmap.NewOrderedMap[world.Handle, *penetration](),
	}
	if s.body != nil {
		s.lastPosition = s.body.Position()
	}
	return s
}

// Handle ...
func (s *Stabbable) Handle() world.Handle {
	return s.handle
}

// Name ...
func (s *Stabbable) Name() string {
	return s.name
}

// Settings returns the settings profile of the stabbable.
func (s *Stabbable) Settings() settings.Stabbable {
	return s.conf
}

// CanStab returns true if a contact is fast enough along its normal to start a stab.
func (s *Stabbable) CanStab(contact physics.Contact) bool {
	speed := contact.RelativeVelocity.Len()
	if n := omath.SafeNormalize(contact.Normal); n != (mgl32.Vec3{}) {
		speed = math32.Abs(contact.RelativeVelocity.Dot(n))
	}
	return speed >= s.conf.RequiredVelocity
}

// OnStabberEnter starts tracking a stabber that penetrated the stabbable. It returns false without
// doing anything if the stabber is already inside, or if another stabber is inside and the
// profile does not allow multiple stabbers.
func (s *Stabbable) OnStabberEnter(stabber world.Handle, contact physics.Contact) bool {
	if stabber == world.Nil {
		return false
	}
	if _, ok := s.stabbers.Get(stabber); ok {
		return false
	}
	if !s.conf.AllowMultipleStabbers && s.stabbers.Len() > 0 {
		return false
	}
	s.stabbers.Set(stabber, &penetration{contact: contact})
	s.sink.Emit(&event.Stabbed{Stabber: stabber, Stabbable: s.handle, Contact: contact})
	return true
}

// OnStabberExit stops tracking the stabber. An Unstabbed event is emitted even if the stabber was
// not being tracked.
func (s *Stabbable) OnStabberExit(stabber world.Handle) {
	s.stabbers.Delete(stabber)
	s.sink.Emit(&event.Unstabbed{Stabber: stabber, Stabbable: s.handle})
}

// OnFullStabReached reports that the stabber reached its full stab depth. The set of stabbers is
// left untouched.
func (s *Stabbable) OnFullStabReached(stabber world.Handle) {
	if p, ok := s.stabbers.Get(stabber); ok {
		p.full = true
	}
	s.sink.Emit(&event.FullyStabbed{Stabber: stabber, Stabbable: s.handle})
}

// UpdateDepth records how deep the stabber is inside the stabbable. The first time the depth
// reaches the full stab depth of the profile, OnFullStabReached is called.
func (s *Stabbable) UpdateDepth(stabber world.Handle, depth float32) {
	p, ok := s.stabbers.Get(stabber)
	if !ok {
		return
	}
	p.depth = depth
	if s.conf.FullStabDepth > 0 && depth >= s.conf.FullStabDepth && !p.full {
		s.OnFullStabReached(stabber)
	}
}

// Depth returns the last depth recorded for the stabber.
func (s *Stabbable) Depth(stabber world.Handle) (float32, bool) {
	p, ok := s.stabbers.Get(stabber)
	if !ok {
		return 0, false
	}
	return p.depth, true
}

// IsStabbed returns true if at least one stabber is inside the stabbable.
func (s *Stabbable) IsStabbed() bool {
	return s.stabbers.Len() > 0
}

// Stabbers returns the stabbers inside the stabbable, in the order they entered.
func (s *Stabbable) Stabbers() []world.Handle {
	return s.stabbers.Keys()
}

// Velocity returns the velocity of the stabbable derived during the last Tick.
func (s *Stabbable) Velocity() mgl32.Vec3 {
	return s.velocity
}

// Tick drops stabbers that were destroyed, deactivated or disabled without exiting, then derives
// the velocity of the stabbable from the distance it moved over dt seconds.
func (s *Stabbable) Tick(dt float32) {
	s.sweep()
	if s.body == nil {
		return
	}
	pos := s.body.Position()
	if dt > 0 {
		s.velocity = pos.Sub(s.lastPosition).Mul(1 / dt)
	}
	s.lastPosition = pos
}

// sweep removes every stabber that is no longer alive. No Unstabbed event is emitted for them.
func (s *Stabbable) sweep() {
	if s.registry == nil || s.stabbers.Len() == 0 {
		return
	}
	var dead []world.Handle
	for el := s.stabbers.Front(); el != nil; el = el.Next() {
		if !s.registry.Alive(el.Key) {
			dead = append(dead, el.Key)
		}
	}
	for _, h := range dead {
		s.stabbers.Delete(h)
		s.log.WithField("stabber", h).Debug("removed stabber that is no longer alive")
	}
}
