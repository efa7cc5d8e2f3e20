package limitbook

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundUpToPowerOf2(t *testing.T) {
	for in, want := range map[int64]int64{1: 1, 2: 2, 3: 4, 1000: 1024, 1024: 1024, 1025: 2048} {
		assert.Equal(t, want, roundUpToPowerOf2(in), "input %d", in)
	}
	assert.Equal(t, int64(defaultBufferSize), NewDisruptor(0).Size())
}

func TestDisruptor_DeliversInOrder(t *testing.T) {
	d := NewDisruptor(4)
	done := make(chan struct{})
	got := make([]uint64, 0, 100)
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		d.Process(done, func(e *Event) {
			got = append(got, e.Command.Quantity)
		})
	}()

	for i := uint64(1); i <= 100; i++ {
		for !d.TryPublish(&Event{Command: Command{Type: CommandPrint, Quantity: i}}) {
			runtime.Gosched()
		}
	}
	close(done)
	<-finished

	require.Len(t, got, 100)
	for i, q := range got {
		assert.Equal(t, uint64(i+1), q)
	}
}
