package event

import (
	"encoding/json"
	"testing"

	"github.com/oomph-ac/grip/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueDrainsInOrder(t *testing.T) {
	q := NewQueue(4)
	q.Emit(&Stabbed{Stabber: 1, Stabbable: 2})
	q.Emit(nil)
	q.Emit(&Unstabbed{Stabber: 1, Stabbable: 2})

	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, IDStabbed, events[0].ID())
	assert.Equal(t, IDUnstabbed, events[1].ID())
	assert.Zero(t, q.Len())
}

func TestQueueOverwritesOldest(t *testing.T) {
	q := NewQueue(2)
	for i := range 3 {
		q.Emit(&PullSucceeded{Target: world.Handle(i + 1)})
	}

	assert.Equal(t, 1, q.Dropped())
	events := q.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, world.Handle(2), events[0].(*PullSucceeded).Target)
}

func TestSinkFunc(t *testing.T) {
	var got []string
	var sink Sink = SinkFunc(func(ev Event) {
		got = append(got, ev.ID())
	})
	sink.Emit(&SocketHoverEnter{})
	NopSink{}.Emit(&SocketHoverExit{})

	assert.Equal(t, []string{IDSocketHoverEnter}, got)
}

func TestEncode(t *testing.T) {
	data, err := Encode(&PullAborted{Run: "abc", Target: 7, Reason: AbortReasonIntentLost})
	require.NoError(t, err)

	var decoded struct {
		ID   string         `json:"id"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, IDPullAborted, decoded.ID)
	assert.Equal(t, "intent_lost", decoded.Data["reason"])
	assert.EqualValues(t, 7, decoded.Data["target"])

	_, err = Encode(nil)
	assert.Error(t, err)
}
