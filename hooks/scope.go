package hooks

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// RenderRequestFunc is the host's re-render trigger. The host must respond by
// scheduling another pass for the same scope; it must not render synchronously
// from inside the callback.
type RenderRequestFunc func()

// Scope owns one render subtree's hook state: a keyed arena of slots, the
// per-pass bookkeeping, and the re-render signal back to the host.
type Scope struct {
	rt *Runtime

	requestRender RenderRequestFunc
	resolver      ContextResolver

	slots map[string]*slot
	order []*slot

	pass      uint64
	rendering bool
	disposed  bool

	// renderQueued coalesces mutation-driven re-render requests until the
	// next pass begins. notifyAfter holds back the host notification while a
	// pass is in progress so the controller never re-enters itself.
	renderQueued bool
	notifyAfter  bool

	deferred []func()

	inflight mapset.Set[*taskHandle]
}

// NewScope creates a scope whose re-render requests are delivered through
// requestRender.
func (rt *Runtime) NewScope(requestRender RenderRequestFunc) *Scope {
	return &Scope{
		rt:            rt,
		requestRender: requestRender,
		slots:         map[string]*slot{},
		inflight:      mapset.NewSet[*taskHandle](),
	}
}

// WithResolver injects the host's context propagation collaborator.
func (s *Scope) WithResolver(r ContextResolver) *Scope {
	s.resolver = r
	return s
}

func (s *Scope) Disposed() bool {
	return s.disposed
}

// BeginPass starts a render pass: advances the pass counter, rewinds the
// per-pass bookkeeping and clears the re-render coalescing flag.
func (s *Scope) BeginPass() {
	if s.disposed {
		panic("hooks: render pass begun on a disposed scope")
	}
	if s.rendering {
		panic("hooks: render pass re-entered while one is in progress")
	}
	s.pass++
	s.rendering = true
	s.renderQueued = false
	s.notifyAfter = false
	s.deferred = s.deferred[:0]
}

// EndPass finishes a render pass: verifies every live slot was revisited,
// flushes deferred effects in call order, and delivers at most one re-render
// notification held back during the pass.
func (s *Scope) EndPass() {
	if !s.rendering {
		panic("hooks: EndPass without a matching BeginPass")
	}
	for _, sl := range s.order {
		if sl.pass != s.pass {
			panic(fmt.Sprintf("hooks: slot %q was not visited this pass; every hook must run on every pass", sl.key))
		}
	}
	deferred := s.deferred
	s.deferred = nil
	for _, run := range deferred {
		run()
	}
	s.rendering = false
	if s.notifyAfter {
		s.notifyAfter = false
		if s.requestRender != nil {
			s.requestRender()
		}
	}
}

// Render runs one full pass over fn.
func (s *Scope) Render(fn func(*Scope)) {
	s.BeginPass()
	fn(s)
	s.EndPass()
}

// invalidate requests a re-render of the scope. Requests coalesce: any number
// of synchronous mutations produce at most one host notification, and a
// mutation during a pass defers its notification to the end of that pass.
func (s *Scope) invalidate() {
	if s.disposed || s.renderQueued {
		return
	}
	s.renderQueued = true
	if s.rendering {
		s.notifyAfter = true
		return
	}
	if s.requestRender != nil {
		s.requestRender()
	}
}

// Dispose tears the scope down: pending effect cleanups run in reverse
// registration order, in-flight async work is cancelled cooperatively, and
// all slots are released. Mutations through previously returned handles
// become silent no-ops.
func (s *Scope) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for i := len(s.order) - 1; i >= 0; i-- {
		sl := s.order[i]
		if sl.cleanup != nil {
			cleanup := sl.cleanup
			sl.cleanup = nil
			cleanup()
		}
	}
	for h := range s.inflight.Iter() {
		h.cancel()
	}
	s.inflight.Clear()
	s.slots = map[string]*slot{}
	s.order = nil
	s.deferred = nil
}
