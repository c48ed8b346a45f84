package hci

import (
	"sync"

	"github.com/btwired/bridge/internal/flags"
)

// flagCtrlReady gates the transmit ring: no command leaves the ring until the
// controller has signalled CTRL_READY (spec §4.6 bring-up bit).
const flagCtrlReady = 1 << 0

// Ring is the single MPSC transmit ring every command source (bring-up,
// pairing, per-device HID init) feeds into. A single pump goroutine drains
// it in order, honouring {0xFF, delay_ms} pacing markers.
type Ring struct {
	mu    sync.Mutex
	queue [][]byte
	state flags.Set
}

// NewRing returns a ring gated closed; call SetReady once CTRL_READY fires.
func NewRing() *Ring {
	return &Ring{}
}

// SetReady opens the gate. Returns true the first time it transitions
// closed->open (mirrors flags.Set's edge semantics).
func (r *Ring) SetReady() bool {
	return r.state.Set(flagCtrlReady)
}

// Closed reports whether the gate is still closed (SetReady not yet called).
func (r *Ring) Closed() bool {
	return !r.state.Test(flagCtrlReady)
}

// Push enqueues a raw H4 frame or a delay sentinel for the pump to drain.
func (r *Ring) Push(frame []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queue = append(r.queue, frame)
}

// PushCommand is a convenience wrapper around Push(Command.Encode()).
func (r *Ring) PushCommand(c Command) {
	r.Push(c.Encode())
}

// PushDelay enqueues a {0xFF, delay_ms} pacing marker.
func (r *Ring) PushDelay(ms uint8) {
	r.Push([]byte{0xFF, ms})
}

// Pop removes and returns the next queued frame, or ok=false if the ring is
// empty or not yet marked ready. The pump is expected to call this from a
// single goroutine; Push may be called from any.
func (r *Ring) Pop() (frame []byte, ok bool) {
	if !r.state.Test(flagCtrlReady) {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queue) == 0 {
		return nil, false
	}
	frame, r.queue = r.queue[0], r.queue[1:]
	return frame, true
}

// Len reports the number of frames currently queued, for tests and metrics.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}
