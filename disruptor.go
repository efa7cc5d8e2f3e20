package limitbook

import (
	"runtime"
	"sync/atomic"
)

const (
	// must be a power of two
	defaultBufferSize = 1024
	// keeps the two sequences on separate cache lines
	cacheLineSize = 64
)

type Sequence struct {
	value atomic.Int64
	pad   [cacheLineSize - 8]byte
}

// Event is one command travelling through the ring.
type Event struct {
	Command   Command
	Timestamp int64
}

// Disruptor is a single-producer, single-consumer ring buffer.
type Disruptor struct {
	ringBuffer []*Event
	mask       int64
	size       int64

	// last published
	cursor Sequence
	// last consumed
	gating Sequence
}

func NewDisruptor(size int64) *Disruptor {
	if size < 1 {
		size = defaultBufferSize
	}
	size = roundUpToPowerOf2(size)

	return &Disruptor{
		ringBuffer: make([]*Event, size),
		mask:       size - 1,
		size:       size,
	}
}

func (d *Disruptor) Size() int64 {
	return d.size
}

// TryPublish returns false when the consumer is a full ring behind.
func (d *Disruptor) TryPublish(event *Event) bool {
	current := d.cursor.value.Load()
	next := current + 1
	wrap := next - d.size

	if wrap > d.gating.value.Load() {
		return false
	}

	d.ringBuffer[next&d.mask] = event
	d.cursor.value.Store(next)
	return true
}

// Process hands every published event to handler in order until done is
// closed. Events published before done was closed are drained first.
func (d *Disruptor) Process(done <-chan struct{}, handler func(*Event)) {
	cursor := d.gating.value.Load()
	for {
		current := d.cursor.value.Load()

		for i := cursor + 1; i <= current; i++ {
			slot := i & d.mask
			event := d.ringBuffer[slot]
			d.ringBuffer[slot] = nil
			handler(event)
		}
		idle := cursor == current
		cursor = current
		d.gating.value.Store(cursor)

		select {
		case <-done:
			if d.cursor.value.Load() == cursor {
				return
			}
			continue
		default:
		}

		if idle {
			runtime.Gosched()
		}
	}
}

func roundUpToPowerOf2(v int64) int64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}
