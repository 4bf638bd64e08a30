package world

import (
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/oerror"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Handle is a weak reference to an object in a World. Holding a Handle never keeps the object
// alive; whether the object still exists must be asked of the Registry every time.
type Handle uint64

// Nil is the zero Handle and never refers to an object.
const Nil Handle = 0

// HandleOf returns the deterministic handle for an object with the name passed. Names are hashed
// so configuration can refer to objects that have not been spawned yet.
func HandleOf(name string) Handle {
	h := Handle(xxh3.HashString(name))
	if h == Nil {
		h++
	}
	return h
}

// Registry answers liveness and hold state for handles. It is the only source of truth for weak
// references held by sockets, socketables and stabbables.
type Registry interface {
	// Alive returns true if the object exists and is both active and enabled.
	Alive(h Handle) bool
	// Held returns true if the object is currently held by a hand or socket.
	Held(h Handle) bool
}

// Tracker is a Registry that can also record which object holds another. Sockets record the objects
// they take through it when their registry supports it.
type Tracker interface {
	Registry
	Hold(h, holder Handle) bool
	Drop(h Handle)
}

type object struct {
	name    string
	active  bool
	enabled bool
	holder  Handle
}

// World is an in-memory Registry. Objects are spawned active and enabled, and disappear from the
// World entirely once destroyed.
type World struct {
	objects map[Handle]*object
	log     logrus.FieldLogger

	deadlock.RWMutex
}

// New returns an empty World logging to the logger passed. A nil logger discards output.
func New(log logrus.FieldLogger) *World {
	if log == nil {
		log = internal.DiscardLogger()
	}
	return &World{
		objects: make(map[Handle]*object),
		log:     log,
	}
}

// Spawn adds a new object with the name passed and returns its handle. An error is returned if an
// object with the same name (or hash) already exists.
func (w *World) Spawn(name string) (Handle, error) {
	h := HandleOf(name)

	w.Lock()
	defer w.Unlock()

	if existing, ok := w.objects[h]; ok {
		return Nil, oerror.New("world: cannot spawn %q, handle %d already used by %q", name, h, existing.name)
	}
	w.objects[h] = &object{name: name, active: true, enabled: true}
	w.log.WithField("object", name).Debug("spawned object")
	return h, nil
}

// Destroy removes the object from the World. Any handle to it stops being alive immediately, and
// anything the object was holding is no longer held.
func (w *World) Destroy(h Handle) {
	w.Lock()
	defer w.Unlock()

	o, ok := w.objects[h]
	if !ok {
		return
	}
	delete(w.objects, h)
	for _, other := range w.objects {
		if other.holder == h {
			other.holder = Nil
		}
	}
	w.log.WithField("object", o.name).Debug("destroyed object")
}

// SetActive activates or deactivates the object.
func (w *World) SetActive(h Handle, active bool) {
	w.Lock()
	defer w.Unlock()

	if o, ok := w.objects[h]; ok {
		o.active = active
	}
}

// SetEnabled enables or disables the object.
func (w *World) SetEnabled(h Handle, enabled bool) {
	w.Lock()
	defer w.Unlock()

	if o, ok := w.objects[h]; ok {
		o.enabled = enabled
	}
}

// Hold marks h as held by holder. It returns false if either object does not exist.
func (w *World) Hold(h, holder Handle) bool {
	w.Lock()
	defer w.Unlock()

	o, ok := w.objects[h]
	if !ok {
		return false
	}
	if _, ok := w.objects[holder]; !ok {
		return false
	}
	o.holder = holder
	return true
}

// Drop clears the holder of h.
func (w *World) Drop(h Handle) {
	w.Lock()
	defer w.Unlock()

	if o, ok := w.objects[h]; ok {
		o.holder = Nil
	}
}

// Holder returns the handle of the object holding h, if any.
func (w *World) Holder(h Handle) (Handle, bool) {
	w.RLock()
	defer w.RUnlock()

	o, ok := w.objects[h]
	if !ok || o.holder == Nil {
		return Nil, false
	}
	return o.holder, true
}

// Alive ...
func (w *World) Alive(h Handle) bool {
	w.RLock()
	defer w.RUnlock()

	o, ok := w.objects[h]
	return ok && o.active && o.enabled
}

// Held ...
func (w *World) Held(h Handle) bool {
	w.RLock()
	defer w.RUnlock()

	o, ok := w.objects[h]
	return ok && o.holder != Nil
}

// Exists returns true if the object has not been destroyed, regardless of its active state.
func (w *World) Exists(h Handle) bool {
	w.RLock()
	defer w.RUnlock()

	_, ok := w.objects[h]
	return ok
}

// Name returns the name the object was spawned with, or an empty string if it does not exist.
func (w *World) Name(h Handle) string {
	w.RLock()
	defer w.RUnlock()

	if o, ok := w.objects[h]; ok {
		return o.name
	}
	return ""
}

// Len returns the amount of objects in the World.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()
	return len(w.objects)
}
