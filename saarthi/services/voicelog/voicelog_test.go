package voicelog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing_KeepsNewestInOrder(t *testing.T) {
	r := NewRing(3)
	for i := 0; i < 5; i++ {
		r.Add(fmt.Sprintf("m%d", i), "")
	}
	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"m2", "m3", "m4"}, []string{snap[0].Message, snap[1].Message, snap[2].Message})
	assert.Equal(t, "info", snap[0].Type)
}

func TestRing_PartialFill(t *testing.T) {
	r := NewRing(0)
	r.Add("wake word detected", "success")
	snap := r.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, "success", snap[0].Type)
	assert.Len(t, r.entries, DefaultCapacity)
}

func TestRing_TimestampFormat(t *testing.T) {
	r := NewRing(2)
	r.now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 15, 250_000_000, time.UTC) }
	assert.Equal(t, "2024-05-01 08:30:15.250", r.Add("x", "info").Timestamp)
}

func TestRing_Subscribe(t *testing.T) {
	r := NewRing(10)
	r.Add("before", "info")
	snap, ch, cancel := r.Subscribe(4)
	require.Len(t, snap, 1)

	r.Add("after", "warning")
	select {
	case e := <-ch:
		assert.Equal(t, "after", e.Message)
	case <-time.After(time.Second):
		t.Fatal("no entry delivered")
	}

	cancel()
	cancel()
	_, open := <-ch
	assert.False(t, open)
	assert.NotPanics(t, func() { r.Add("late", "info") })
}

func TestRing_SlowSubscriberDoesNotBlock(t *testing.T) {
	r := NewRing(10)
	_, _, cancel := r.Subscribe(1)
	defer cancel()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			r.Add("spam", "info")
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer blocked on subscriber")
	}
}
