package event

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/world"
)

type SocketHoverEnter struct {
	Socket    world.Handle `json:"socket"`
	Grabbable world.Handle `json:"grabbable"`
}

func (*SocketHoverEnter) ID() string {
	return IDSocketHoverEnter
}

type SocketHoverExit struct {
	Socket    world.Handle `json:"socket"`
	Grabbable world.Handle `json:"grabbable"`
}

func (*SocketHoverExit) ID() string {
	return IDSocketHoverExit
}

// SocketAttached is emitted once a socket has taken a grabbable. Pose and Scale are what the
// grabbable was snapped to; Cue is the audio cue to play, if any.
type SocketAttached struct {
	Socket    world.Handle `json:"socket"`
	Grabbable world.Handle `json:"grabbable"`
	Pose      physics.Pose `json:"pose"`
	Scale     mgl32.Vec3   `json:"scale"`
	Cue       string       `json:"cue,omitempty"`
}

func (*SocketAttached) ID() string {
	return IDSocketAttached
}

const (
	ReleaseReasonReleased     = "released"
	ReleaseReasonOccupantLost = "occupant_lost"
)

type SocketReleased struct {
	Socket    world.Handle `json:"socket"`
	Grabbable world.Handle `json:"grabbable"`
	Reason    string       `json:"reason"`
	Cue       string       `json:"cue,omitempty"`
}

func (*SocketReleased) ID() string {
	return IDSocketReleased
}
