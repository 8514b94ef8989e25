package hooks

// Cleanup undoes an effect body's work before the next body runs and at scope
// teardown. Bodies may return nil.
type Cleanup func()

// EffectTiming selects when an effect body runs relative to the pass output.
type EffectTiming uint8

const (
	// Deferred effects run after the pass output is produced and before the
	// next pass begins.
	Deferred EffectTiming = iota
	// Immediate effects run synchronously at the call site, before the pass
	// finishes producing its output.
	Immediate
)

// scheduleEffect arranges for body to run under the slot's cleanup
// discipline: the previous invocation's cleanup runs first, then the body,
// whose returned cleanup is retained for the next invocation or for teardown.
func (s *Scope) scheduleEffect(sl *slot, body func() Cleanup, timing EffectTiming) {
	run := func() {
		if s.disposed {
			return
		}
		if sl.cleanup != nil {
			cleanup := sl.cleanup
			sl.cleanup = nil
			cleanup()
		}
		sl.cleanup = body()
	}
	if timing == Immediate {
		run()
		return
	}
	s.deferred = append(s.deferred, run)
}
