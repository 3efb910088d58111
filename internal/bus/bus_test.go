package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAlarmBusFIFO(t *testing.T) {
	b := NewAlarmBus()
	b.Send(Alarm{Subject: "first"})
	b.Send(Alarm{Subject: "second"})

	require.Equal(t, "first", (<-b.Recv()).Subject)
	require.Equal(t, "second", (<-b.Recv()).Subject)
}

func TestPriceBusPublishNonBlocking(t *testing.T) {
	b := NewPriceBus()
	done := make(chan struct{})
	go func() {
		b.Publish(Envelope{Indices: []uint8{0}, Prices: []uint64{1}})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on an empty buffer")
	}
}

func TestPriceBusDropsOldestWhenFull(t *testing.T) {
	b := NewPriceBus()
	for i := 0; i < capacity; i++ {
		b.Publish(Envelope{ProducedAtMs: uint64(i)})
	}
	// Buffer is now full at capacity entries (0..capacity-1). One more
	// publish must drop the oldest (0) to make room for the newest.
	b.Publish(Envelope{ProducedAtMs: uint64(capacity)})

	first := <-b.Recv()
	require.Equal(t, uint64(1), first.ProducedAtMs)
}
