package hooks

import "context"

// StreamEvent carries one element or a terminal error from a stream source.
type StreamEvent[T any] struct {
	Value T
	Err   error
}

// OpenStreamFunc subscribes to a push-based source. The returned channel must
// be closed when the source ends, and the source should stop producing once
// ctx is cancelled.
type OpenStreamFunc[T any] func(ctx context.Context) <-chan StreamEvent[T]

// startStream consumes a stream source on its own goroutine. Each element
// re-enters Success on the UI context; an error event is terminal, cancels
// the subscription and stops consumption; channel close leaves the last phase
// in place.
func startStream[T any](s *Scope, cell *asyncCell[T], open OpenStreamFunc[T]) {
	gen, ctx, h := rearm(s, cell)
	rt := s.rt
	rt.track()
	go func() {
		defer rt.done()
		events := open(ctx)
		for ev := range events {
			ev := ev
			if ev.Err != nil {
				rt.post(func() {
					s.inflight.Remove(h)
					if s.disposed || gen != cell.gen {
						return
					}
					cell.handle = nil
					cell.phase = Phase[T]{Kind: PhaseFailure, Err: ev.Err}
					s.invalidate()
				})
				h.cancel()
				return
			}
			rt.post(func() {
				if s.disposed || gen != cell.gen {
					return
				}
				cell.phase = Phase[T]{Kind: PhaseSuccess, Value: ev.Value}
				s.invalidate()
			})
		}
		rt.post(func() {
			s.inflight.Remove(h)
			if gen == cell.gen {
				cell.handle = nil
			}
		})
	}()
}

// adaptPublisher lifts a plain value channel into the stream event shape.
func adaptPublisher[T any](subscribe func(ctx context.Context) <-chan T) OpenStreamFunc[T] {
	return func(ctx context.Context) <-chan StreamEvent[T] {
		out := make(chan StreamEvent[T])
		go func() {
			defer close(out)
			for v := range subscribe(ctx) {
				select {
				case out <- StreamEvent[T]{Value: v}:
				case <-ctx.Done():
					return
				}
			}
		}()
		return out
	}
}
