package hooks

import "context"

// PhaseKind tags the lifecycle stage of an asynchronous unit of work.
type PhaseKind uint8

const (
	PhasePending PhaseKind = iota
	PhaseRunning
	PhaseSuccess
	PhaseFailure
)

func (k PhaseKind) String() string {
	switch k {
	case PhasePending:
		return "pending"
	case PhaseRunning:
		return "running"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Phase is the observable state of an async or stream binding. For a single
// call Success and Failure are terminal; a stream re-enters Success once per
// element and treats an error as terminal. A cancelled unit never writes a
// terminal phase.
type Phase[T any] struct {
	Kind  PhaseKind
	Value T
	Err   error
}

func (p Phase[T]) IsPending() bool { return p.Kind == PhasePending }
func (p Phase[T]) IsRunning() bool { return p.Kind == PhaseRunning }
func (p Phase[T]) IsSuccess() bool { return p.Kind == PhaseSuccess }
func (p Phase[T]) IsFailure() bool { return p.Kind == PhaseFailure }

// Result unpacks a terminal phase.
func (p Phase[T]) Result() (T, error) {
	return p.Value, p.Err
}

// taskHandle identifies one launched unit of work for cooperative
// cancellation and supersede checks.
type taskHandle struct {
	gen    uint64
	cancel context.CancelFunc
}

type asyncCell[T any] struct {
	phase  Phase[T]
	gen    uint64
	handle *taskHandle
}

// rearm cancels any unit still in flight for the cell and arms a fresh
// generation, so a stale completion can be recognized and discarded.
func rearm[T any](s *Scope, cell *asyncCell[T]) (uint64, context.Context, *taskHandle) {
	if cell.handle != nil {
		cell.handle.cancel()
		s.inflight.Remove(cell.handle)
		cell.handle = nil
	}
	cell.gen++
	ctx, cancel := context.WithCancel(context.Background())
	h := &taskHandle{gen: cell.gen, cancel: cancel}
	cell.handle = h
	s.inflight.Add(h)
	cell.phase = Phase[T]{Kind: PhaseRunning}
	if !s.rendering {
		s.invalidate()
	}
	return cell.gen, ctx, h
}

// startAsync launches work on its own goroutine. The completion is marshalled
// onto the UI context; a completion whose scope was disposed or whose launch
// was superseded is discarded without writing the phase.
func startAsync[T any](s *Scope, cell *asyncCell[T], work func(ctx context.Context) (T, error)) {
	gen, ctx, h := rearm(s, cell)
	rt := s.rt
	rt.track()
	go func() {
		value, err := work(ctx)
		rt.post(func() {
			s.inflight.Remove(h)
			if s.disposed || gen != cell.gen {
				return
			}
			cell.handle = nil
			if err != nil {
				cell.phase = Phase[T]{Kind: PhaseFailure, Err: err}
			} else {
				cell.phase = Phase[T]{Kind: PhaseSuccess, Value: value}
			}
			s.invalidate()
		})
		rt.done()
	}()
}
