package hooks

import "context"

// State is the handle returned by UseState. Set and Update request a
// re-render of the owning scope; both are silent no-ops once the scope is
// disposed. The handle observes the scope, it does not own it.
type State[T any] struct {
	scope *Scope
	cell  *stateCell[T]
}

func (st *State[T]) Value() T {
	return st.cell.value
}

func (st *State[T]) Set(value T) {
	if st.scope.disposed {
		return
	}
	st.cell.value = value
	st.scope.invalidate()
}

func (st *State[T]) Update(fn func(T) T) {
	if st.scope.disposed {
		return
	}
	st.cell.value = fn(st.cell.value)
	st.scope.invalidate()
}

// UseState allocates a mutable value slot. initial is used on the first pass
// only.
func UseState[T any](s *Scope, key string, initial T) *State[T] {
	sl := s.useSlot(key, slotState, func() any { return &stateCell[T]{value: initial} })
	return &State[T]{scope: s, cell: cellOf[stateCell[T]](sl)}
}

// Ref holds a mutable value whose writes never trigger a re-render.
type Ref[T any] struct {
	Current T
}

func UseRef[T any](s *Scope, key string, initial T) *Ref[T] {
	sl := s.useSlot(key, slotRef, func() any { return &Ref[T]{Current: initial} })
	return cellOf[Ref[T]](sl)
}

// UseMemo returns a cached value, recomputed when deps decides so.
func UseMemo[T any](s *Scope, key string, deps Deps, compute func() T) T {
	sl := s.useSlot(key, slotMemo, func() any { return &memoCell[T]{} })
	cell := cellOf[memoCell[T]](sl)
	if sl.evaluate(deps) == recompute {
		cell.value = compute()
	}
	return cell.value
}

// UseReducer holds state advanced by a pure transition function. dispatch
// requests a re-render and is a no-op after disposal.
func UseReducer[S, A any](s *Scope, key string, reducer func(S, A) S, initial S) (S, func(A)) {
	sl := s.useSlot(key, slotReducer, func() any {
		return &reducerCell[S, A]{state: initial, reducer: reducer}
	})
	cell := cellOf[reducerCell[S, A]](sl)
	cell.reducer = reducer
	dispatch := func(action A) {
		if s.disposed {
			return
		}
		cell.state = cell.reducer(cell.state, action)
		s.invalidate()
	}
	return cell.state, dispatch
}

// UseEffect schedules body to run after the pass output is produced, when
// deps decides so. The previous invocation's cleanup runs before the body;
// skipped passes leave the previous cleanup untouched.
func UseEffect(s *Scope, key string, deps Deps, body func() Cleanup) {
	useEffectTimed(s, key, deps, body, Deferred)
}

// UseLayoutEffect runs body synchronously at the call site, before the pass
// output is produced.
func UseLayoutEffect(s *Scope, key string, deps Deps, body func() Cleanup) {
	useEffectTimed(s, key, deps, body, Immediate)
}

func useEffectTimed(s *Scope, key string, deps Deps, body func() Cleanup, timing EffectTiming) {
	sl := s.useSlot(key, slotEffect, func() any { return &effectCell{} })
	if sl.evaluate(deps) == recompute {
		s.scheduleEffect(sl, body, timing)
	}
}

// UseContext resolves the nearest provided value for key through the scope's
// injected resolver, falling back to the key's default.
func UseContext[T any](s *Scope, key *ContextKey[T]) T {
	if s.resolver != nil {
		if v, ok := s.resolver.Resolve(key.id); ok {
			if typed, ok := v.(T); ok {
				return typed
			}
		}
	}
	return key.defaultValue
}

// UseAsync binds a single asynchronous call to the slot and relaunches it
// whenever deps decides to recompute. A relaunch supersedes and cancels the
// previous unit of work.
func UseAsync[T any](s *Scope, key string, deps Deps, work func(ctx context.Context) (T, error)) Phase[T] {
	sl := s.useSlot(key, slotAsync, func() any { return &asyncCell[T]{} })
	cell := cellOf[asyncCell[T]](sl)
	if sl.evaluate(deps) == recompute {
		startAsync(s, cell, work)
	}
	return cell.phase
}

// UseAsyncPerform binds work to the slot without starting it. The returned
// perform launches or relaunches it, independent of any dependency key, and
// is a no-op after disposal.
func UseAsyncPerform[T any](s *Scope, key string, work func(ctx context.Context) (T, error)) (Phase[T], func()) {
	sl := s.useSlot(key, slotAsync, func() any { return &asyncCell[T]{} })
	cell := cellOf[asyncCell[T]](sl)
	perform := func() {
		if s.disposed {
			return
		}
		startAsync(s, cell, work)
	}
	return cell.phase, perform
}

// UseStream binds a push-based source to the slot, resubscribing whenever
// deps decides to recompute.
func UseStream[T any](s *Scope, key string, deps Deps, open OpenStreamFunc[T]) Phase[T] {
	sl := s.useSlot(key, slotAsync, func() any { return &asyncCell[T]{} })
	cell := cellOf[asyncCell[T]](sl)
	if sl.evaluate(deps) == recompute {
		startStream(s, cell, open)
	}
	return cell.phase
}

// UsePublisher adapts a plain value-channel source into a stream binding.
func UsePublisher[T any](s *Scope, key string, deps Deps, subscribe func(ctx context.Context) <-chan T) Phase[T] {
	return UseStream(s, key, deps, adaptPublisher(subscribe))
}

// UsePublisherSubscribe is the manually triggered publisher form: the source
// is not consumed until the returned subscribe function is called.
func UsePublisherSubscribe[T any](s *Scope, key string, subscribe func(ctx context.Context) <-chan T) (Phase[T], func()) {
	sl := s.useSlot(key, slotAsync, func() any { return &asyncCell[T]{} })
	cell := cellOf[asyncCell[T]](sl)
	start := func() {
		if s.disposed {
			return
		}
		startStream(s, cell, adaptPublisher(subscribe))
	}
	return cell.phase, start
}
