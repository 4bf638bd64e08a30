package scene

import (
	"strings"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/entity"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/forcepull"
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/oerror"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/sim"
	"github.com/oomph-ac/grip/socket"
	"github.com/oomph-ac/grip/stab"
	"github.com/oomph-ac/grip/world"
	"github.com/sirupsen/logrus"
)

// Scene ties items, hands, sockets and stabbables to a world, a simulation loop and a force pull
// engine.
type Scene struct {
	conf   settings.Settings
	log    logrus.FieldLogger
	world  *world.World
	loop   *sim.Loop
	engine *forcepull.Engine
	events *event.Queue
	sink   event.Sink

	items      *orderedmap.OrderedMap[world.Handle, *Item]
	hands      *orderedmap.OrderedMap[world.Handle, *Hand]
	sockets    *orderedmap.OrderedMap[world.Handle, *socket.Socket]
	stabbables *orderedmap.OrderedMap[world.Handle, *stab.Stabbable]
	containers map[string]*socket.Container

	// destinations holds where each pulled item goes once its pull succeeds.
	destinations map[world.Handle]destination
}

// Options holds the configuration of a Scene.
type Options struct {
	Settings settings.Settings
	Log      logrus.FieldLogger
	// EventCapacity is the amount of events buffered between calls to Events. Zero uses 256.
	EventCapacity int
	// Sink, if set, receives every event as it happens in addition to the buffered queue.
	Sink event.Sink
}

// New creates an empty scene. Sections of the settings left unset use their defaults, and an error
// is returned if the resulting settings are invalid.
func New(opts Options) (*Scene, error) {
	opts.Settings = opts.Settings.WithDefaults()
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = internal.DiscardLogger()
	}
	if opts.EventCapacity <= 0 {
		opts.EventCapacity = 256
	}

	s := &Scene{
		conf:         opts.Settings,
		log:          opts.Log,
		world:        world.New(opts.Log),
		loop:         sim.NewLoop(opts.Settings.Sim, opts.Log),
		events:       event.NewQueue(opts.EventCapacity),
		items:        orderedmap.NewOrderedMap[world.Handle, *Item](),
		hands:        orderedmap.NewOrderedMap[world.Handle, *Hand](),
		sockets:      orderedmap.NewOrderedMap[world.Handle, *socket.Socket](),
		stabbables:   orderedmap.NewOrderedMap[world.Handle, *stab.Stabbable](),
		containers:   make(map[string]*socket.Container),
		destinations: make(map[world.Handle]destination),
	}
	s.sink = s.events
	if opts.Sink != nil {
		s.sink = event.SinkFunc(func(ev event.Event) {
			s.events.Emit(ev)
			opts.Sink.Emit(ev)
		})
	}
	s.engine = forcepull.NewEngine(forcepull.Options{
		Settings: opts.Settings.ForcePull,
		Registry: s.world,
		Handoff:  forcepull.HandoffFunc(s.handOff),
		Sink:     s.sink,
		Log:      opts.Log,
	})
	s.loop.AddFixed(sim.TickerFunc(s.tickPhysics))
	s.loop.AddFrame(sim.TickerFunc(s.tickFrame))
	return s, nil
}

// World ...
func (s *Scene) World() *world.World {
	return s.world
}

// Loop ...
func (s *Scene) Loop() *sim.Loop {
	return s.loop
}

// Engine ...
func (s *Scene) Engine() *forcepull.Engine {
	return s.engine
}

// Settings ...
func (s *Scene) Settings() settings.Settings {
	return s.conf
}

// Events returns every event emitted since the last call.
func (s *Scene) Events() []event.Event {
	return s.events.Drain()
}

// SpawnItem adds an item at the pose passed. The tag is the tag of its socket facet.
func (s *Scene) SpawnItem(name, tag string, pose physics.Pose) (*Item, error) {
	h, err := s.world.Spawn(name)
	if err != nil {
		return nil, err
	}
	it := &Item{Entity: entity.NewEntity(pose), name: name, handle: h, facet: socket.NewSocketable(h, tag)}
	s.items.Set(h, it)
	return it, nil
}

// SpawnHand adds a hand at the pose passed.
func (s *Scene) SpawnHand(name string, pose physics.Pose) (*Hand, error) {
	h, err := s.world.Spawn(name)
	if err != nil {
		return nil, err
	}
	if pose.Rotation == (mgl32.Quat{}) {
		pose.Rotation = mgl32.QuatIdent()
	}
	hand := &Hand{name: name, handle: h, pose: pose}
	s.hands.Set(h, hand)
	return hand, nil
}

// AddSocket adds a socket using the socket settings of the scene.
func (s *Scene) AddSocket(name string, pose physics.Pose, filters ...socket.Filter) (*socket.Socket, error) {
	h, err := s.world.Spawn(name)
	if err != nil {
		return nil, err
	}
	sock := socket.New(socket.Options{
		Name:     name,
		Pose:     pose,
		Filters:  filters,
		Settings: s.conf.Socket,
		Registry: s.world,
		Sink:     s.sink,
		Log:      s.log,
	})
	s.sockets.Set(h, sock)
	return sock, nil
}

// AddContainer adds a container holding the sockets passed. Auto-populating containers take every
// socket already in the scene whose name starts with the container name followed by a slash, such
// as "belt/left" for a container named "belt".
func (s *Scene) AddContainer(name string, autoPopulate bool, sockets ...*socket.Socket) (*socket.Container, error) {
	if _, ok := s.containers[name]; ok {
		return nil, oerror.New("scene: container %q already exists", name)
	}
	c := socket.NewContainer(autoPopulate, sockets...)
	c.Init(socket.SourceFunc(func() []*socket.Socket {
		return s.socketsUnder(name + "/")
	}))
	s.containers[name] = c
	return c, nil
}

// Container returns the container with the name passed.
func (s *Scene) Container(name string) (*socket.Container, bool) {
	c, ok := s.containers[name]
	return c, ok
}

// AddStabbable makes the item passed stabbable using the stabbable settings of the scene.
func (s *Scene) AddStabbable(it *Item) *stab.Stabbable {
	if st, ok := s.stabbables.Get(it.Handle()); ok {
		return st
	}
	st := stab.New(stab.Options{
		Name:     it.Name(),
		Body:     it.Body(),
		Settings: s.conf.Stabbable,
		Registry: s.world,
		Sink:     s.sink,
		Log:      s.log,
	})
	s.stabbables.Set(it.Handle(), st)
	return st
}

// Stab reports that the stabber item hit the stabbable. The stab only starts if the contact is fast
// enough.
func (s *Scene) Stab(st *stab.Stabbable, stabber *Item, contact physics.Contact) bool {
	if !s.world.Alive(stabber.Handle()) || !st.CanStab(contact) {
		return false
	}
	return st.OnStabberEnter(stabber.Handle(), contact)
}

// Destroy removes the item from the scene. Sockets, stabbables and pulls referring to it notice on
// their next tick.
func (s *Scene) Destroy(it *Item) {
	for el := s.hands.Front(); el != nil; el = el.Next() {
		if el.Value.held == it {
			el.Value.held = nil
		}
	}
	s.world.Destroy(it.Handle())
	s.items.Delete(it.Handle())
	s.stabbables.Delete(it.Handle())
	delete(s.destinations, it.Handle())
}

// Grab puts the item into the hand. An item in a socket is released from it first, which fails if
// the socket is locked.
func (s *Scene) Grab(hand *Hand, it *Item) bool {
	if !s.world.Alive(it.Handle()) || hand.held != nil {
		return false
	}
	if !s.free(it) {
		return false
	}
	s.engine.Cancel(it.Handle())
	if !s.world.Hold(it.Handle(), hand.Handle()) {
		return false
	}
	hand.held = it
	it.SetKinematic(true)
	it.Teleport(hand.Pose())
	return true
}

// Release drops whatever the hand is holding, returning it.
func (s *Scene) Release(hand *Hand) (*Item, bool) {
	it := hand.held
	if it == nil {
		return nil, false
	}
	hand.held = nil
	s.world.Drop(it.Handle())
	it.SetKinematic(false)
	return it, true
}

// free takes the item out of the hand or socket holding it. It returns false if the item sits in a
// locked socket.
func (s *Scene) free(it *Item) bool {
	holder, ok := s.world.Holder(it.Handle())
	if !ok {
		return true
	}
	if sock, isSocket := s.sockets.Get(holder); isSocket {
		return sock.Release()
	}
	if other, isHand := s.hands.Get(holder); isHand {
		other.held = nil
		s.world.Drop(it.Handle())
		it.SetKinematic(false)
	}
	return true
}

// PullToHand force pulls the item towards the hand. The hand grabs it once the pull succeeds. An
// item in a hand or socket is taken out of it first; nil is returned if its socket is locked.
func (s *Scene) PullToHand(hand *Hand, it *Item) *forcepull.Run {
	if !s.free(it) {
		return nil
	}
	s.destinations[it.Handle()] = handDestination{hand: hand}
	return s.engine.Pull(it, hand, it.DynamicPose)
}

// PullToContainer force pulls the item towards the first socket of the container that accepts it.
// It returns false if no socket does, or if the item sits in a locked socket. An item in a hand or
// socket is taken out of it before the pull starts.
func (s *Scene) PullToContainer(c *socket.Container, it *Item) (*forcepull.Run, bool) {
	sock, ok := c.TryFindAvailableSocket(it)
	if !ok || !s.free(it) {
		return nil, false
	}
	s.destinations[it.Handle()] = socketDestination{socket: sock}
	return s.engine.Pull(it, sock, false), true
}

// tickPhysics runs one fixed physics step.
func (s *Scene) tickPhysics(dt float32) {
	s.engine.Tick(dt)
	for el := s.hands.Front(); el != nil; el = el.Next() {
		if it := el.Value.held; it != nil {
			it.Teleport(el.Value.Pose())
		}
	}
	for el := s.items.Front(); el != nil; el = el.Next() {
		el.Value.Tick(dt)
	}
	s.updateHover()
	for el := s.stabbables.Front(); el != nil; el = el.Next() {
		el.Value.Tick(dt)
	}
	for el := s.sockets.Front(); el != nil; el = el.Next() {
		el.Value.Tick(dt)
	}
}

// updateHover lets sockets know which held items are close enough to hover over them. Items that
// are not held by a hand never hover.
func (s *Scene) updateHover() {
	radius := s.conf.Socket.HoverRadius
	for sel := s.sockets.Front(); sel != nil; sel = sel.Next() {
		sock := sel.Value
		for iel := s.items.Front(); iel != nil; iel = iel.Next() {
			it := iel.Value
			near := s.heldByHand(it) && sock.State() == socket.Empty && omath.BoxPointDistance(it.bounds(), sock.Pose().Position) <= radius
			switch hovered := sock.IsHovered(it.Handle()); {
			case near && !hovered:
				sock.HoverEnter(it)
			case !near && hovered:
				sock.HoverExit(it)
			}
		}
	}
}

// heldByHand returns true if the item is held by one of the hands of the scene.
func (s *Scene) heldByHand(it *Item) bool {
	holder, ok := s.world.Holder(it.Handle())
	if !ok {
		return false
	}
	_, isHand := s.hands.Get(holder)
	return isHand
}

// tickFrame runs once per rendered frame. Only pull destinations that were lost are cleaned here:
// everything else is physics driven.
func (s *Scene) tickFrame(float32) {
	for h := range s.destinations {
		if _, ok := s.engine.Run(h); !ok {
			delete(s.destinations, h)
		}
	}
}

// handOff completes the grab of an item whose pull succeeded.
func (s *Scene) handOff(r *forcepull.Run) {
	it, ok := r.Target().(*Item)
	if !ok {
		return
	}
	dest, ok := s.destinations[it.Handle()]
	if !ok {
		return
	}
	delete(s.destinations, it.Handle())
	if !dest.complete(s, it) {
		s.log.WithFields(logrus.Fields{"item": it.Name(), "run": r.ID()}).Warn("pulled item could not be attached")
	}
}

// socketsUnder returns every socket whose name starts with the prefix passed, in the order they
// were added.
func (s *Scene) socketsUnder(prefix string) []*socket.Socket {
	var out []*socket.Socket
	for el := s.sockets.Front(); el != nil; el = el.Next() {
		if name := el.Value.Name(); strings.HasPrefix(name, prefix) && name != prefix {
			out = append(out, el.Value)
		}
	}
	return out
}

// destination is where a pulled item ends up.
type destination interface {
	complete(s *Scene, it *Item) bool
}

type handDestination struct {
	hand *Hand
}

func (d handDestination) complete(s *Scene, it *Item) bool {
	return s.Grab(d.hand, it)
}

type socketDestination struct {
	socket *socket.Socket
}

func (d socketDestination) complete(_ *Scene, it *Item) bool {
	return d.socket.TryGrab(it)
}
