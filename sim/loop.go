package sim

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/oerror"
	"github.com/oomph-ac/grip/settings"
	"github.com/sirupsen/logrus"
)

// stepEpsilon absorbs float32 rounding when the accumulated frame time is compared to the step.
const stepEpsilon = 1e-6

// Ticker is anything advanced by the loop.
type Ticker interface {
	Tick(dt float32)
}

// TickerFunc adapts an ordinary function to a Ticker.
type TickerFunc func(dt float32)

func (f TickerFunc) Tick(dt float32) {
	f(dt)
}

// Loop runs fixed-step physics tickers and per-frame tickers on a single goroutine. Every physics
// ticker is ticked with the same fixed step, as many times as the frame time passed allows.
type Loop struct {
	conf  settings.Sim
	fixed []Ticker
	frame []Ticker
	log   logrus.FieldLogger

	accumulator float32
	tasks       chan func()

	steps  atomic.Uint64
	frames atomic.Uint64
}

// NewLoop creates a Loop with no tickers.
func NewLoop(conf settings.Sim, log logrus.FieldLogger) *Loop {
	if log == nil {
		log = internal.DiscardLogger()
	}
	return &Loop{conf: conf.OrDefault(), log: log, tasks: make(chan func(), 64)}
}

// FixedStep returns the duration of a physics tick in seconds.
func (l *Loop) FixedStep() float32 {
	return l.conf.FixedStep
}

// AddFixed adds a ticker ticked on every physics step, after the tickers added before it.
func (l *Loop) AddFixed(t Ticker) {
	l.fixed = append(l.fixed, t)
}

// AddFrame adds a ticker ticked once per frame with the frame time, after all physics steps.
func (l *Loop) AddFrame(t Ticker) {
	l.frame = append(l.frame, t)
}

// Submit queues f to run on the loop goroutine at the start of the next frame. It blocks while the
// queue is full.
func (l *Loop) Submit(f func()) {
	l.tasks <- f
}

// Steps returns the amount of physics steps run so far.
func (l *Loop) Steps() uint64 {
	return l.steps.Load()
}

// Frames returns the amount of frames run so far.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Advance runs one frame of frameDelta seconds: pending tasks, then as many physics steps as the
// accumulated time allows (capped by MaxStepsPerFrame), then the frame tickers. It returns the
// amount of physics steps run.
func (l *Loop) Advance(frameDelta float32) int {
	l.runTasks()

	l.accumulator += frameDelta
	steps := 0
	for l.accumulator+stepEpsilon >= l.conf.FixedStep {
		if steps >= l.conf.MaxStepsPerFrame {
			l.log.Warnf("simulation is behind, dropping %.3fs of physics time", l.accumulator)
			l.accumulator = 0
			break
		}
		for _, t := range l.fixed {
			t.Tick(l.conf.FixedStep)
		}
		l.accumulator -= l.conf.FixedStep
		steps++
	}
	if l.accumulator < 0 {
		l.accumulator = 0
	}
	l.steps.Add(uint64(steps))

	for _, t := range l.frame {
		t.Tick(frameDelta)
	}
	l.frames.Add(1)
	return steps
}

func (l *Loop) runTasks() {
	for {
		select {
		case f := <-l.tasks:
			f()
		default:
			return
		}
	}
}

// Run advances the loop at its frame rate until ctx is cancelled. A panic in any ticker stops the
// loop, is reported to sentry and returned as an error.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = oerror.New("simulation loop crashed: %v", r)
			l.log.Errorf("%v", err)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("component", "sim")
			})
			hub.Recover(err)
			hub.Flush(time.Second * 5)
		}
	}()

	interval := time.Duration(float64(time.Second) / float64(l.conf.FrameRate))
	t := time.NewTicker(interval)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			l.Advance(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}
