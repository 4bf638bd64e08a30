package stab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/entity"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/omath"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/world"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStabbable(t *testing.T, conf settings.Stabbable) (*Stabbable, *world.World, *entity.Entity, *event.Queue) {
	t.Helper()
	w := world.New(nil)
	_, err := w.Spawn("target")
	require.NoError(t, err)
	body := entity.NewEntity(physics.IdentityPose())
	q := event.NewQueue(16)
	return New(Options{Name: "target", Body: body, Settings: conf, Registry: w, Sink: q}), w, body, q
}

func spawn(t *testing.T, w *world.World, name string) world.Handle {
	t.Helper()
	h, err := w.Spawn(name)
	require.NoError(t, err)
	return h
}

func TestEnterIsIdempotent(t *testing.T) {
	s, w, _, q := newStabbable(t, settings.DefaultStabbable())
	knife := spawn(t, w, "knife")

	assert.True(t, s.OnStabberEnter(knife, physics.Contact{}))
	assert.False(t, s.OnStabberEnter(knife, physics.Contact{}))
	assert.False(t, s.OnStabberEnter(world.Nil, physics.Contact{}))

	assert.True(t, s.IsStabbed())
	assert.Equal(t, []world.Handle{knife}, s.Stabbers())
	assert.Len(t, q.Drain(), 1)
}

func TestSingleStabberProfile(t *testing.T) {
	s, w, _, _ := newStabbable(t, settings.DefaultStabbable())
	a, b := spawn(t, w, "a"), spawn(t, w, "b")

	assert.True(t, s.OnStabberEnter(a, physics.Contact{}))
	assert.False(t, s.OnStabberEnter(b, physics.Contact{}))

	multi, w2, _, _ := newStabbable(t, settings.Stabbable{AllowMultipleStabbers: true})
	a2, b2 := spawn(t, w2, "a"), spawn(t, w2, "b")
	assert.True(t, multi.OnStabberEnter(a2, physics.Contact{}))
	assert.True(t, multi.OnStabberEnter(b2, physics.Contact{}))
	assert.Equal(t, []world.Handle{a2, b2}, multi.Stabbers())
}

func TestExitAlwaysEmitsUnstabbed(t *testing.T) {
	s, w, _, q := newStabbable(t, settings.DefaultStabbable())
	knife := spawn(t, w, "knife")
	require.True(t, s.OnStabberEnter(knife, physics.Contact{}))
	q.Drain()

	s.OnStabberExit(knife)
	s.OnStabberExit(knife)
	assert.False(t, s.IsStabbed())

	events := q.Drain()
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, event.IDUnstabbed, ev.ID())
	}
}

func TestSweepRemovesDeadStabbersSilently(t *testing.T) {
	s, w, _, q := newStabbable(t, settings.Stabbable{AllowMultipleStabbers: true})
	knife := spawn(t, w, "knife")
	arrow := spawn(t, w, "arrow")
	bolt := spawn(t, w, "bolt")
	for _, h := range []world.Handle{knife, arrow, bolt} {
		require.True(t, s.OnStabberEnter(h, physics.Contact{}))
	}
	q.Drain()

	w.SetActive(knife, false)
	w.Destroy(arrow)
	s.Tick(1.0 / 90.0)

	assert.Equal(t, []world.Handle{bolt}, s.Stabbers())
	assert.Zero(t, q.Len(), "the sweep never emits exit events")

	w.SetEnabled(bolt, false)
	s.Tick(1.0 / 90.0)
	assert.False(t, s.IsStabbed())
}

func TestSweepLogsRemovedStabbers(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	w := world.New(nil)
	knife := spawn(t, w, "knife")
	s := New(Options{Name: "target", Settings: settings.DefaultStabbable(), Registry: w, Log: log})
	require.True(t, s.OnStabberEnter(knife, physics.Contact{}))

	w.Destroy(knife)
	s.Tick(0.1)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "target", hook.LastEntry().Data["stabbable"])
}

func TestVelocityIsDerivedFromDisplacement(t *testing.T) {
	s, _, body, _ := newStabbable(t, settings.DefaultStabbable())
	dt := float32(0.02)

	body.Teleport(physics.Pose{Position: mgl32.Vec3{0.1, 0, -0.04}, Rotation: mgl32.QuatIdent()})
	s.Tick(dt)
	assert.True(t, omath.Vec3ApproxEq(mgl32.Vec3{5, 0, -2}, s.Velocity()), "got %v", s.Velocity())

	s.Tick(dt)
	assert.Equal(t, mgl32.Vec3{}, s.Velocity(), "no displacement means no velocity")
}

func TestFullStab(t *testing.T) {
	s, w, _, q := newStabbable(t, settings.Stabbable{FullStabDepth: 0.1})
	knife := spawn(t, w, "knife")
	require.True(t, s.OnStabberEnter(knife, physics.Contact{}))
	q.Drain()

	s.UpdateDepth(knife, 0.05)
	assert.Zero(t, q.Len())
	s.UpdateDepth(knife, 0.1)
	s.UpdateDepth(knife, 0.12)

	events := q.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, event.IDFullyStabbed, events[0].ID())
	assert.True(t, s.IsStabbed(), "a full stab keeps the stabber inside")

	depth, ok := s.Depth(knife)
	assert.True(t, ok)
	assert.Equal(t, float32(0.12), depth)

	s.OnFullStabReached(world.HandleOf("ghost"))
	assert.Len(t, q.Drain(), 1)
	assert.Equal(t, []world.Handle{knife}, s.Stabbers())
}

func TestCanStab(t *testing.T) {
	s, _, _, _ := newStabbable(t, settings.Stabbable{RequiredVelocity: 2})

	assert.True(t, s.CanStab(physics.Contact{Normal: mgl32.Vec3{0, 1, 0}, RelativeVelocity: mgl32.Vec3{0, -3, 0}}))
	assert.False(t, s.CanStab(physics.Contact{Normal: mgl32.Vec3{0, 1, 0}, RelativeVelocity: mgl32.Vec3{3, -1, 0}}), "glancing hits do not stab")
	assert.True(t, s.CanStab(physics.Contact{RelativeVelocity: mgl32.Vec3{2, 0, 0}}))
}

func TestNewUsesDefaultSettingsWhenUnset(t *testing.T) {
	s := New(Options{Name: "target"})
	assert.Equal(t, settings.DefaultStabbable(), s.Settings())
	assert.False(t, s.CanStab(physics.Contact{RelativeVelocity: mgl32.Vec3{0.1, 0, 0}}))
}
