package forcepull

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/grip/event"
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/settings"
	"github.com/oomph-ac/grip/world"
	"github.com/sirupsen/logrus"
)

// Handoff completes the grab once a pull succeeded, for example by placing the target into the
// socket it was pulled to.
type Handoff interface {
	HandlePullSucceeded(r *Run)
}

// HandoffFunc adapts an ordinary function to a Handoff.
type HandoffFunc func(r *Run)

func (f HandoffFunc) HandlePullSucceeded(r *Run) {
	f(r)
}

// Options holds the configuration of an Engine.
type Options struct {
	// Settings are copied into every run started after they are set.
	Settings settings.ForcePull
	// Registry is used to abort runs whose target no longer exists. Nil disables the check.
	Registry world.Registry
	// Handoff is called for every run that succeeds. Nil does nothing.
	Handoff Handoff
	Sink    event.Sink
	Log     logrus.FieldLogger
}

// Engine drives every running force pull. Each target has at most one run at a time.
type Engine struct {
	conf     settings.ForcePull
	registry world.Registry
	handoff  Handoff
	sink     event.Sink
	log      logrus.FieldLogger

	runs *orderedmap.OrderedMap[world.Handle, *Run]
}

// NewEngine creates an Engine with no runs.
func NewEngine(opts Options) *Engine {
	if opts.Sink == nil {
		opts.Sink = event.NopSink{}
	}
	if opts.Log == nil {
		opts.Log = internal.DiscardLogger()
	}
	if opts.Handoff == nil {
		opts.Handoff = HandoffFunc(func(*Run) {})
	}
	return &Engine{
		conf:     opts.Settings.OrDefault(),
		registry: opts.Registry,
		handoff:  opts.Handoff,
		sink:     opts.Sink,
		log:      opts.Log,
		runs:     orderedmap.NewOrderedMap[world.Handle, *Run](),
	}
}

// Settings returns the settings new runs are started with.
func (e *Engine) Settings() settings.ForcePull {
	return e.conf
}

// SetSettings changes the settings of runs started from now on. Running pulls keep theirs.
func (e *Engine) SetSettings(conf settings.ForcePull) {
	e.conf = conf.OrDefault()
}

// Pull starts pulling the target towards the anchor. A run already pulling the same target is
// aborted first. dynamic selects the dynamic grab threshold.
func (e *Engine) Pull(target Target, anchor Anchor, dynamic bool) *Run {
	if prev, ok := e.runs.Get(target.Handle()); ok {
		e.abort(prev, event.AbortReasonSuperseded)
	}

	r := newRun(target, anchor, e.conf, dynamic)
	e.runs.Set(target.Handle(), r)
	e.log.WithFields(logrus.Fields{"run": r.id, "target": target.Handle()}).Debugf("force pull started from %.2f away", r.startDistance)
	e.sink.Emit(&event.PullStarted{Run: r.id, Target: target.Handle(), StartDistance: r.startDistance, Dynamic: dynamic})
	return r
}

// Cancel aborts the run pulling the target, returning false if there is none.
func (e *Engine) Cancel(target world.Handle) bool {
	r, ok := e.runs.Get(target)
	if !ok {
		return false
	}
	e.abort(r, event.AbortReasonCancelled)
	return true
}

// Run returns the run pulling the target, if any.
func (e *Engine) Run(target world.Handle) (*Run, bool) {
	return e.runs.Get(target)
}

// Len returns the amount of running pulls.
func (e *Engine) Len() int {
	return e.runs.Len()
}

// Tick advances every run by one physics step of dt seconds, in the order they were started.
func (e *Engine) Tick(dt float32) {
	if e.runs.Len() == 0 {
		return
	}
	runs := make([]*Run, 0, e.runs.Len())
	for el := e.runs.Front(); el != nil; el = el.Next() {
		runs = append(runs, el.Value)
	}

	for _, r := range runs {
		// A handoff earlier in this tick may have superseded or cancelled the run.
		if r.state != Running {
			continue
		}
		switch {
		case e.registry != nil && !e.registry.Alive(r.target.Handle()):
			e.abort(r, event.AbortReasonTargetLost)
			continue
		case !r.anchor.GrabIntent():
			e.abort(r, event.AbortReasonIntentLost)
			continue
		}

		if r.step(dt) {
			e.sink.Emit(&event.RotationEngaged{Run: r.id, Target: r.target.Handle(), Distance: r.refDistance, Elapsed: r.elapsed})
		}
		if r.state == Succeeded {
			e.forget(r)
			e.log.WithField("run", r.id).Debugf("force pull succeeded after %.2fs", r.elapsed)
			e.sink.Emit(&event.PullSucceeded{Run: r.id, Target: r.target.Handle(), Elapsed: r.elapsed})
			e.handoff.HandlePullSucceeded(r)
		}
	}
}

func (e *Engine) abort(r *Run, reason string) {
	if r.state != Running {
		return
	}
	r.abort(reason)
	e.forget(r)
	e.log.WithFields(logrus.Fields{"run": r.id, "reason": reason}).Debug("force pull aborted")
	e.sink.Emit(&event.PullAborted{Run: r.id, Target: r.target.Handle(), Reason: reason, Elapsed: r.elapsed})
}

// forget removes r from the run table, leaving any newer run for the same target in place.
func (e *Engine) forget(r *Run) {
	if current, ok := e.runs.Get(r.target.Handle()); ok && current == r {
		e.runs.Delete(r.target.Handle())
	}
}
