package hooks

import (
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when Settle or FlushWait give up waiting for the
// runtime to make progress.
var ErrTimeout = errors.New("hooks: timed out waiting for the runtime")

// Runtime owns the UI context: the single logical thread onto which every
// observable slot write is marshalled. Passes, effect flushes and evaluator
// decisions all happen on the thread that calls into the runtime; completions
// of work launched on other goroutines re-enter through the run queue and are
// applied by Flush.
type Runtime struct {
	mu       sync.Mutex
	queue    []func()
	inflight int
	wake     chan struct{}
}

func NewRuntime() *Runtime {
	return &Runtime{wake: make(chan struct{}, 1)}
}

// post schedules fn to run on the UI context. Safe from any goroutine.
func (rt *Runtime) post(fn func()) {
	rt.mu.Lock()
	rt.queue = append(rt.queue, fn)
	rt.mu.Unlock()
	rt.signal()
}

func (rt *Runtime) signal() {
	select {
	case rt.wake <- struct{}{}:
	default:
	}
}

// track records one launched unit of asynchronous work. done releases it.
func (rt *Runtime) track() {
	rt.mu.Lock()
	rt.inflight++
	rt.mu.Unlock()
}

func (rt *Runtime) done() {
	rt.mu.Lock()
	rt.inflight--
	rt.mu.Unlock()
	rt.signal()
}

// Flush runs every queued thunk. The caller is the UI context for the
// duration of the call.
func (rt *Runtime) Flush() {
	for {
		rt.mu.Lock()
		if len(rt.queue) == 0 {
			rt.mu.Unlock()
			return
		}
		pending := rt.queue
		rt.queue = nil
		rt.mu.Unlock()
		for _, fn := range pending {
			fn()
		}
	}
}

// FlushWait blocks until at least one thunk is queued, flushes it, and
// returns. Useful for stepping through completions one at a time while a
// stream binding is still open.
func (rt *Runtime) FlushWait(timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		rt.mu.Lock()
		queued := len(rt.queue)
		rt.mu.Unlock()
		if queued > 0 {
			rt.Flush()
			return nil
		}
		select {
		case <-rt.wake:
		case <-deadline.C:
			return ErrTimeout
		}
	}
}

// Settle flushes the run queue until no queued thunks and no in-flight units
// of work remain. Open stream bindings count as in flight until their source
// ends; step those with FlushWait instead.
func (rt *Runtime) Settle(timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	for {
		rt.Flush()
		rt.mu.Lock()
		idle := rt.inflight == 0 && len(rt.queue) == 0
		rt.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-rt.wake:
		case <-deadline.C:
			return ErrTimeout
		}
	}
}
