package socket

import "slices"

// Source enumerates the sockets found below a container, such as the holsters of a belt.
type Source interface {
	Sockets() []*Socket
}

// SourceFunc adapts an ordinary function to a Source.
type SourceFunc func() []*Socket

func (f SourceFunc) Sockets() []*Socket {
	return f()
}

// Container groups sockets so that a grabbable can be placed into the first one that accepts it.
// Queries never fail: they report availability through their results only.
type Container struct {
	sockets      []*Socket
	autoPopulate bool
	initialised  bool
}

// NewContainer returns a container holding the sockets passed, in order. If autoPopulate is set, the
// list is replaced by the sockets of the Source passed to Init.
func NewContainer(autoPopulate bool, sockets ...*Socket) *Container {
	c := &Container{autoPopulate: autoPopulate}
	for _, s := range sockets {
		c.Add(s)
	}
	return c
}

// Init initialises the container. Auto-populating containers rebuild their socket list from src on
// the first call; every later call does nothing.
func (c *Container) Init(src Source) {
	if c.initialised {
		return
	}
	c.initialised = true
	if !c.autoPopulate || src == nil {
		return
	}
	c.sockets = nil
	for _, s := range src.Sockets() {
		c.Add(s)
	}
}

// Add appends the socket to the container. It returns false if the socket is nil or already in it.
func (c *Container) Add(s *Socket) bool {
	if s == nil || slices.Contains(c.sockets, s) {
		return false
	}
	c.sockets = append(c.sockets, s)
	return true
}

// Remove removes the socket from the container, returning false if it was not in it.
func (c *Container) Remove(s *Socket) bool {
	i := slices.Index(c.sockets, s)
	if i < 0 {
		return false
	}
	c.sockets = slices.Delete(c.sockets, i, i+1)
	return true
}

// Sockets returns a copy of the sockets of the container, in order.
func (c *Container) Sockets() []*Socket {
	return slices.Clone(c.sockets)
}

// Len ...
func (c *Container) Len() int {
	return len(c.sockets)
}

// HasAvailableSocket returns true if any socket in the container is empty.
func (c *Container) HasAvailableSocket() bool {
	for _, s := range c.sockets {
		if s.State() == Empty {
			return true
		}
	}
	return false
}

// HasAvailableSocketFor returns true if an empty socket in the container accepts the grabbable.
func (c *Container) HasAvailableSocketFor(g Grabbable) bool {
	_, ok := c.TryFindAvailableSocket(g)
	return ok
}

// TryFindAvailableSocket returns the first empty socket, in container order, that accepts the
// grabbable.
func (c *Container) TryFindAvailableSocket(g Grabbable) (*Socket, bool) {
	if g == nil {
		return nil, false
	}
	for _, s := range c.sockets {
		if s.State() == Empty && s.IsValid(g) {
			return s, true
		}
	}
	return nil, false
}

// TryAddGrabbable places the grabbable into the first socket that accepts it. It returns false,
// changing nothing, if no socket does.
func (c *Container) TryAddGrabbable(g Grabbable) bool {
	s, ok := c.TryFindAvailableSocket(g)
	if !ok {
		return false
	}
	return s.TryGrab(g)
}
