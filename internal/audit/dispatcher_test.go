package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchDropsWhenQueueIsFull(t *testing.T) {
	// No worker: the queue only fills up.
	d := &Dispatcher{queue: make(chan Event, 1)}

	d.Dispatch(Event{Action: "first"})
	d.Dispatch(Event{Action: "second"})

	assert.Len(t, d.queue, 1)
	assert.Equal(t, "first", (<-d.queue).Action)
}

func TestDiscardSatisfiesRecorder(t *testing.T) {
	var r Recorder = Discard{}
	r.Dispatch(Event{Action: "noop"})
}
