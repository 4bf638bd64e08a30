package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/socket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 72.0)

func newScene(t *testing.T) *Scene {
	t.Helper()
	s, err := New(Options{Settings: settings.DefaultSettings()})
	require.NoError(t, err)
	return s
}

func at(x, y, z float32) physics.Pose {
	return physics.Pose{Position: mgl32.Vec3{x, y, z}, Rotation: mgl32.QuatIdent()}
}

func hasEvent(events []event.Event, id string) bool {
	for _, ev := range events {
		if ev.ID() == id {
			return true
		}
	}
	return false
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	conf := settings.DefaultSettings()
	conf.Sim.FixedStep = -1
	_, err := New(Options{Settings: conf})
	assert.Error(t, err)
}

func TestPullIntoContainer(t *testing.T) {
	s := newScene(t)
	pistol, err := s.AddSocket("belt/pistol", at(0.3, 1, 0), socket.TagFilter{Tag: "pistol"})
	require.NoError(t, err)
	pouch, err := s.AddSocket("belt/pouch", at(-0.3, 1, 0), socket.TagFilter{Tag: "magazine"})
	require.NoError(t, err)
	belt, err := s.AddContainer("belt", true)
	require.NoError(t, err)
	assert.Equal(t, []*socket.Socket{pistol, pouch}, belt.Sockets())

	mag, err := s.SpawnItem("mag", "Magazine", at(0, 1, 3))
	require.NoError(t, err)

	_, ok := s.PullToContainer(belt, mag)
	require.True(t, ok)
	for i := 0; i < 720 && pouch.State() == socket.Empty; i++ {
		s.Loop().Advance(frame)
	}

	require.Equal(t, socket.Occupied, pouch.State())
	assert.Equal(t, socket.Empty, pistol.State())
	holder, held := s.World().Holder(mag.Handle())
	require.True(t, held)
	assert.Equal(t, pouch.Handle(), holder)
	assert.Equal(t, pouch.Pose().Position, mag.Position())

	events := s.Events()
	assert.True(t, hasEvent(events, event.IDPullSucceeded))
	assert.True(t, hasEvent(events, event.IDSocketAttached))
}

func TestPullIntoContainerWithoutSocket(t *testing.T) {
	s := newScene(t)
	_, err := s.AddSocket("rack/a", at(0, 0, 0), socket.TagFilter{Tag: "rifle"})
	require.NoError(t, err)
	rack, err := s.AddContainer("rack", true)
	require.NoError(t, err)
	apple, err := s.SpawnItem("apple", "food", at(0, 0, 1))
	require.NoError(t, err)

	_, ok := s.PullToContainer(rack, apple)
	assert.False(t, ok)
	assert.Zero(t, s.Engine().Len())

	_, err = s.AddContainer("rack", false)
	assert.Error(t, err)
}

func TestPullToHand(t *testing.T) {
	s := newScene(t)
	hand, err := s.SpawnHand("right_hand", at(0, 1, 0))
	require.NoError(t, err)
	hand.SetGrabIntent(true)
	knife, err := s.SpawnItem("knife", "", at(0, 1, 4))
	require.NoError(t, err)

	s.PullToHand(hand, knife)
	for i := 0; i < 720 && s.Engine().Len() > 0; i++ {
		s.Loop().Advance(frame)
	}

	held, ok := hand.Held()
	require.True(t, ok)
	assert.Same(t, knife, held)
	assert.True(t, s.World().Held(knife.Handle()))

	hand.SetPose(at(1, 1, 0))
	s.Loop().Advance(frame)
	assert.Equal(t, mgl32.Vec3{1, 1, 0}, knife.Position())

	dropped, ok := s.Release(hand)
	require.True(t, ok)
	assert.Same(t, knife, dropped)
	assert.False(t, s.World().Held(knife.Handle()))
}

func TestPullAbortsWhenHandLetsGo(t *testing.T) {
	s := newScene(t)
	hand, err := s.SpawnHand("left_hand", at(0, 1, 0))
	require.NoError(t, err)
	hand.SetGrabIntent(true)
	bottle, err := s.SpawnItem("bottle", "", at(0, 1, 6))
	require.NoError(t, err)

	run := s.PullToHand(hand, bottle)
	for range 10 {
		s.Loop().Advance(frame)
	}
	hand.SetGrabIntent(false)
	s.Loop().Advance(frame)

	assert.Equal(t, event.AbortReasonIntentLost, run.Reason())
	assert.LessOrEqual(t, bottle.Velocity().Len(), s.Settings().ForcePull.MaxMissSpeed+1e-4)
	_, ok := hand.Held()
	assert.False(t, ok)
	assert.Empty(t, s.destinations)
}

func TestGrabFromSocket(t *testing.T) {
	s := newScene(t)
	hand, err := s.SpawnHand("hand", at(0, 0, 0))
	require.NoError(t, err)
	holster, err := s.AddSocket("holster", at(0, 1, 0))
	require.NoError(t, err)
	gun, err := s.SpawnItem("gun", "", at(0, 0, 0))
	require.NoError(t, err)
	require.True(t, holster.TryGrab(gun))

	holster.SetCanRemove(false)
	assert.False(t, s.Grab(hand, gun))
	assert.Equal(t, socket.Occupied, holster.State())

	holster.SetCanRemove(true)
	require.True(t, s.Grab(hand, gun))
	assert.Equal(t, socket.Empty, holster.State())
	holder, _ := s.World().Holder(gun.Handle())
	assert.Equal(t, hand.Handle(), holder)
}

func TestStabAndDestroyStabber(t *testing.T) {
	s := newScene(t)
	target, err := s.SpawnItem("dummy", "", at(0, 0, 0))
	require.NoError(t, err)
	arrow, err := s.SpawnItem("arrow", "", at(0, 0, 1))
	require.NoError(t, err)
	st := s.AddStabbable(target)
	assert.Same(t, st, s.AddStabbable(target))

	slow := physics.Contact{Normal: mgl32.Vec3{0, 0, 1}, RelativeVelocity: mgl32.Vec3{0, 0, -0.1}}
	assert.False(t, s.Stab(st, arrow, slow))
	fast := physics.Contact{Normal: mgl32.Vec3{0, 0, 1}, RelativeVelocity: mgl32.Vec3{0, 0, -6}}
	require.True(t, s.Stab(st, arrow, fast))
	assert.True(t, st.IsStabbed())

	s.Destroy(arrow)
	s.Loop().Advance(frame)
	assert.False(t, st.IsStabbed())
	assert.False(t, hasEvent(s.Events(), event.IDUnstabbed))
}

func TestDestroyedOccupantFreesSocket(t *testing.T) {
	s := newScene(t)
	holster, err := s.AddSocket("holster", at(0, 1, 0))
	require.NoError(t, err)
	gun, err := s.SpawnItem("gun", "", at(0, 0, 0))
	require.NoError(t, err)
	require.True(t, holster.TryGrab(gun))

	s.Destroy(gun)
	s.Loop().Advance(frame)
	assert.Equal(t, socket.Empty, holster.State())
}

func TestHeldItemsHoverOverSockets(t *testing.T) {
	s := newScene(t)
	hand, err := s.SpawnHand("hand", at(0, 0, 0))
	require.NoError(t, err)
	holster, err := s.AddSocket("holster", at(0, 1, 0))
	require.NoError(t, err)
	gun, err := s.SpawnItem("gun", "", at(0, 0, 0))
	require.NoError(t, err)

	// Items lying around never hover, however close they are.
	gun.Teleport(at(0, 1, 0))
	s.Loop().Advance(frame)
	assert.False(t, holster.IsHovered(gun.Handle()))

	require.True(t, s.Grab(hand, gun))
	hand.SetPose(at(0, 1.05, 0))
	s.Loop().Advance(frame)
	assert.True(t, holster.IsHovered(gun.Handle()))

	hand.SetPose(at(0, 2, 0))
	s.Loop().Advance(frame)
	assert.False(t, holster.IsHovered(gun.Handle()))

	events := s.Events()
	assert.True(t, hasEvent(events, event.IDSocketHoverEnter))
	assert.True(t, hasEvent(events, event.IDSocketHoverExit))
}

func TestNewFillsUnsetSettingsWithDefaults(t *testing.T) {
	s, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, settings.DefaultSettings(), s.Settings())
	assert.Equal(t, settings.DefaultSim().FixedStep, s.Loop().FixedStep())

	conf := settings.Settings{ForcePull: settings.DefaultForcePull()}
	conf.ForcePull.MaxSpeed = 3
	s, err = New(Options{Settings: conf})
	require.NoError(t, err)
	assert.Equal(t, float32(3), s.Engine().Settings().MaxSpeed)
	assert.Equal(t, settings.DefaultSocket(), s.Settings().Socket)
}

func TestPullMovesItemBetweenSockets(t *testing.T) {
	s := newScene(t)
	holster, err := s.AddSocket("hip/holster", at(0, 1, 0))
	require.NoError(t, err)
	_, err = s.AddContainer("hip", true)
	require.NoError(t, err)
	slot, err := s.AddSocket("rack/slot", at(0, 1, 2))
	require.NoError(t, err)
	rack, err := s.AddContainer("rack", true)
	require.NoError(t, err)

	pistol, err := s.SpawnItem("pistol", "", at(0, 1, 0))
	require.NoError(t, err)
	require.True(t, holster.TryGrab(pistol))

	holster.SetCanRemove(false)
	_, ok := s.PullToContainer(rack, pistol)
	assert.False(t, ok, "a locked socket keeps its occupant")
	assert.Zero(t, s.Engine().Len())
	holster.SetCanRemove(true)

	_, ok = s.PullToContainer(rack, pistol)
	require.True(t, ok)
	assert.Equal(t, socket.Empty, holster.State())
	for i := 0; i < 720 && slot.State() == socket.Empty; i++ {
		s.Loop().Advance(frame)
	}

	require.Equal(t, socket.Occupied, slot.State())
	assert.Equal(t, socket.Empty, holster.State())
	holder, held := s.World().Holder(pistol.Handle())
	require.True(t, held)
	assert.Equal(t, slot.Handle(), holder)
}
