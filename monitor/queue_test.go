package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservableQueueOverflowBehavior(t *testing.T) {
	const capacity = 3
	const enqueues = 10

	var adds, removes, resets int
	q := NewObservableQueue[int](capacity, func(c Change) {
		switch c.Kind {
		case Added:
			adds++
		case Removed:
			removes++
		case Reset:
			resets++
		}
	})

	for i := 0; i < enqueues; i++ {
		q.Add(i)
	}

	require.Equal(t, capacity, q.Len())
	assert.Equal(t, []int{7, 8, 9}, q.Snapshot(), "final contents are the last capacity enqueues, oldest first")
	assert.Equal(t, enqueues, adds)
	assert.Equal(t, enqueues-capacity, removes)
	assert.Zero(t, resets)
}

func TestObservableQueueClearOnEmptyEmitsNothing(t *testing.T) {
	var resets int
	q := NewObservableQueue[int](4, func(c Change) {
		if c.Kind == Reset {
			resets++
		}
	})

	q.Clear()
	assert.Zero(t, resets, "Clear on an empty queue must not raise a notification")

	q.Add(1)
	q.Clear()
	assert.Equal(t, 1, resets)
	assert.Zero(t, q.Len())
}

func TestObservableQueueNilOnChangeIsSafe(t *testing.T) {
	q := NewObservableQueue[string](2, nil)
	q.Add("a")
	q.Add("b")
	q.Add("c")
	assert.Equal(t, []string{"b", "c"}, q.Snapshot())
}
