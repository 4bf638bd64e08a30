package cli

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/grip/oerror"
	"github.com/oomph-ac/grip/physics"
	"github.com/oomph-ac/grip/scene"
	"github.com/oomph-ac/grip/socket"
)

// step is a scripted action run at a given frame of the demo scenario.
type step struct {
	frame uint64
	name  string
	do    func() error
}

// scenario is the demo scripted against a scene: a hand pulls a pistol, a magazine flies into a
// belt pouch, a knife stabs a dummy and is destroyed, and the pistol is holstered and drawn again.
type scenario struct {
	scene *scene.Scene
	steps []step
	next  int
	frame uint64
	// onStep is called after every step with its name and error, if any.
	onStep func(name string, err error)
}

func pose(x, y, z float32) physics.Pose {
	return physics.Pose{Position: mgl32.Vec3{x, y, z}, Rotation: mgl32.QuatIdent()}
}

// newScenario populates the scene with the objects of the demo and returns its script.
func newScenario(s *scene.Scene) (*scenario, error) {
	holster, err := s.AddSocket("belt/holster", pose(0.25, 0.9, 0), socket.TagFilter{Tag: "pistol"})
	if err != nil {
		return nil, err
	}
	if _, err := s.AddSocket("belt/pouch", pose(-0.25, 0.9, 0), socket.TagFilter{Tag: "magazine"}); err != nil {
		return nil, err
	}
	belt, err := s.AddContainer("belt", true)
	if err != nil {
		return nil, err
	}

	hand, err := s.SpawnHand("right_hand", pose(0.2, 1.2, 0.3))
	if err != nil {
		return nil, err
	}
	pistol, err := s.SpawnItem("pistol", "pistol", physics.Pose{
		Position: mgl32.Vec3{0, 1, 3},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(120), mgl32.Vec3{0, 1, 0}),
	})
	if err != nil {
		return nil, err
	}
	mag, err := s.SpawnItem("magazine", "magazine", pose(1, 0.5, 2))
	if err != nil {
		return nil, err
	}
	knife, err := s.SpawnItem("knife", "", pose(2, 1, 1))
	if err != nil {
		return nil, err
	}
	dummyItem, err := s.SpawnItem("dummy", "", pose(2, 1, 0))
	if err != nil {
		return nil, err
	}
	dummy := s.AddStabbable(dummyItem)

	sc := &scenario{scene: s}
	sc.steps = []step{
		{frame: 1, name: "pull pistol to hand", do: func() error {
			hand.SetGrabIntent(true)
			s.PullToHand(hand, pistol)
			return nil
		}},
		{frame: 10, name: "pull magazine into belt", do: func() error {
			if _, ok := s.PullToContainer(belt, mag); !ok {
				return oerror.New("no belt socket accepts the magazine")
			}
			return nil
		}},
		{frame: 200, name: "stab dummy with knife", do: func() error {
			contact := physics.Contact{Point: mgl32.Vec3{2, 1, 0.1}, Normal: mgl32.Vec3{0, 0, 1}, RelativeVelocity: mgl32.Vec3{0, 0, -4}}
			if !s.Stab(dummy, knife, contact) {
				return oerror.New("knife did not stab the dummy")
			}
			return nil
		}},
		{frame: 210, name: "destroy knife", do: func() error {
			s.Destroy(knife)
			return nil
		}},
		{frame: 240, name: "move hand over holster", do: func() error {
			hand.SetPose(holster.Pose())
			return nil
		}},
		{frame: 250, name: "holster pistol", do: func() error {
			if _, ok := s.Release(hand); !ok {
				return oerror.New("hand is not holding the pistol")
			}
			hand.SetGrabIntent(false)
			if !belt.TryAddGrabbable(pistol) {
				return oerror.New("belt has no socket for the pistol")
			}
			return nil
		}},
		{frame: 300, name: "draw pistol", do: func() error {
			hand.SetGrabIntent(true)
			if !s.Grab(hand, pistol) {
				return oerror.New("pistol could not be drawn from the holster")
			}
			return nil
		}},
	}
	return sc, nil
}

// Tick runs every step scheduled up to the current frame. It is added to the loop as a frame
// ticker.
func (sc *scenario) Tick(float32) {
	sc.frame++
	for sc.next < len(sc.steps) && sc.steps[sc.next].frame <= sc.frame {
		st := sc.steps[sc.next]
		sc.next++
		err := st.do()
		if sc.onStep != nil {
			sc.onStep(st.name, err)
		}
	}
}

// Done returns true once every step ran and no pull is still in flight.
func (sc *scenario) Done() bool {
	return sc.next >= len(sc.steps) && sc.scene.Engine().Len() == 0
}
