package event

import "github.com/oomph-ac/grip/world"

type PullStarted struct {
	Run           string       `json:"run"`
	Target        world.Handle `json:"target"`
	StartDistance float32      `json:"start_distance"`
	Dynamic       bool         `json:"dynamic"`
}

func (*PullStarted) ID() string {
	return IDPullStarted
}

type RotationEngaged struct {
	Run      string       `json:"run"`
	Target   world.Handle `json:"target"`
	Distance float32      `json:"distance"`
	Elapsed  float32      `json:"elapsed"`
}

func (*RotationEngaged) ID() string {
	return IDRotationEngaged
}

type PullSucceeded struct {
	Run     string       `json:"run"`
	Target  world.Handle `json:"target"`
	Elapsed float32      `json:"elapsed"`
}

func (*PullSucceeded) ID() string {
	return IDPullSucceeded
}

const (
	AbortReasonCancelled  = "cancelled"
	AbortReasonIntentLost = "intent_lost"
	AbortReasonTargetLost = "target_lost"
	AbortReasonSuperseded = "superseded"
)

type PullAborted struct {
	Run     string       `json:"run"`
	Target  world.Handle `json:"target"`
	Reason  string       `json:"reason"`
	Elapsed float32      `json:"elapsed"`
}

func (*PullAborted) ID() string {
	return IDPullAborted
}
