package event

import (
	"bytes"
	"encoding/json"

	"github.com/oomph-ac/grip/internal"
	"github.com/oomph-ac/grip/internal/ring"
	"github.com/oomph-ac/grip/oerror"
)

const (
	IDSocketHoverEnter = "grip:socket_hover_enter"
	IDSocketHoverExit  = "grip:socket_hover_exit"
	IDSocketAttached   = "grip:socket_attached"
	IDSocketReleased   = "grip:socket_released"

	IDStabbed      = "grip:stabbed"
	IDUnstabbed    = "grip:unstabbed"
	IDFullyStabbed = "grip:fully_stabbed"

	IDPullStarted     = "grip:pull_started"
	IDRotationEngaged = "grip:pull_rotation_engaged"
	IDPullSucceeded   = "grip:pull_succeeded"
	IDPullAborted     = "grip:pull_aborted"
)

// Event is a notification emitted by a socket, stabbable or force pull run.
type Event interface {
	ID() string
}

// Sink receives events as they happen. Sinks are called from the simulation goroutine and must
// not block.
type Sink interface {
	Emit(ev Event)
}

// NopSink drops every event.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// SinkFunc adapts an ordinary function to a Sink.
type SinkFunc func(ev Event)

func (f SinkFunc) Emit(ev Event) {
	f(ev)
}

// Queue is a Sink that buffers events until they are drained, typically once per frame. When
// full, the oldest events are overwritten.
type Queue struct {
	buf     *ring.Buffer[Event]
	dropped int
}

// NewQueue returns a Queue holding at most capacity events.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{buf: ring.New[Event](capacity)}
}

// Emit ...
func (q *Queue) Emit(ev Event) {
	if ev == nil {
		return
	}
	if dropped, _ := q.buf.Push(ev); dropped {
		q.dropped++
	}
}

// Drain returns every buffered event from oldest to newest and empties the queue.
func (q *Queue) Drain() []Event {
	events := make([]Event, 0, q.buf.Len())
	for {
		ev, ok := q.buf.Pop()
		if !ok {
			return events
		}
		events = append(events, ev)
	}
}

// Len returns the number of buffered events.
func (q *Queue) Len() int {
	return q.buf.Len()
}

// Dropped returns how many events were overwritten because the queue was full.
func (q *Queue) Dropped() int {
	return q.dropped
}

type envelope struct {
	ID   string `json:"id"`
	Data Event  `json:"data"`
}

// Encode encodes the event into a JSON object of the form {"id": ..., "data": ...}.
func Encode(ev Event) ([]byte, error) {
	if ev == nil {
		return nil, oerror.New("event: cannot encode nil event")
	}
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(envelope{ID: ev.ID(), Data: ev}); err != nil {
		return nil, oerror.New("event: encode %s: %v", ev.ID(), err)
	}
	return bytes.TrimSpace(bytes.Clone(buf.Bytes())), nil
}
