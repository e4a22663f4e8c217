package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeAndPublish(t *testing.T) {
	n := NewNotifier[string](false)
	require.NotNil(t, n)
	assert.Equal(t, 0, n.SubscriberCount())

	var received []string
	unsubscribe := n.Subscribe(func(v string) { received = append(received, v) })
	assert.Equal(t, 1, n.SubscriberCount())

	n.Publish("first")
	n.Publish("second")
	assert.Equal(t, []string{"first", "second"}, received)

	unsubscribe()
	assert.Equal(t, 0, n.SubscriberCount())

	n.Publish("third")
	assert.Equal(t, []string{"first", "second"}, received)
}

func TestNotifier_MultipleSubscribers(t *testing.T) {
	n := NewNotifier[int](false)

	var a, b []int
	unsubA := n.Subscribe(func(v int) { a = append(a, v) })
	unsubB := n.Subscribe(func(v int) { b = append(b, v) })
	assert.Equal(t, 2, n.SubscriberCount())

	n.Publish(42)
	n.Publish(100)

	assert.Equal(t, []int{42, 100}, a)
	assert.Equal(t, []int{42, 100}, b)

	unsubA()
	n.Publish(7)
	assert.Equal(t, []int{42, 100}, a)
	assert.Equal(t, []int{42, 100, 7}, b)
	unsubB()
}

func TestNotifier_ReplayLast(t *testing.T) {
	n := NewNotifier[int](true)

	// No publish yet - nothing to replay.
	var early []int
	unsubEarly := n.Subscribe(func(v int) { early = append(early, v) })
	assert.Empty(t, early)
	unsubEarly()

	n.Publish(1)
	n.Publish(2)

	var late []int
	unsubLate := n.Subscribe(func(v int) { late = append(late, v) })
	defer unsubLate()
	assert.Equal(t, []int{2}, late)

	n.Publish(3)
	assert.Equal(t, []int{2, 3}, late)
}

func TestNotifier_ReplayDisabled(t *testing.T) {
	n := NewNotifier[int](false)
	n.Publish(1)

	var got []int
	unsub := n.Subscribe(func(v int) { got = append(got, v) })
	defer unsub()
	assert.Empty(t, got)
}

func TestNotifier_NilSubscriberPanics(t *testing.T) {
	n := NewNotifier[int](false)
	assert.Panics(t, func() { n.Subscribe(nil) })
}

func TestNotifier_UnsubscribeTwiceIsSafe(t *testing.T) {
	n := NewNotifier[int](false)
	unsub := n.Subscribe(func(int) {})
	unsub()
	assert.NotPanics(t, unsub)
	assert.Equal(t, 0, n.SubscriberCount())
}
