package hooks

// RenderFunc is one scope's render logic, executed once per pass.
type RenderFunc func(*Scope)

// Driver is a minimal host for a single scope: it owns the scope, runs passes
// over a render function, and honors re-render requests by marking the scope
// invalid until the next RenderIfNeeded. Real hosts schedule passes on their
// own loop; the driver exists for tests, benchmarks and embedding.
type Driver struct {
	scope   *Scope
	render  RenderFunc
	invalid bool
	passes  int
}

func NewDriver(rt *Runtime, render RenderFunc) *Driver {
	d := &Driver{render: render}
	d.scope = rt.NewScope(func() { d.invalid = true })
	return d
}

func (d *Driver) Scope() *Scope {
	return d.scope
}

// Passes reports how many passes have run.
func (d *Driver) Passes() int {
	return d.passes
}

// Invalid reports whether a re-render request is pending.
func (d *Driver) Invalid() bool {
	return d.invalid
}

// Render runs one pass unconditionally.
func (d *Driver) Render() {
	d.invalid = false
	d.passes++
	d.scope.Render(d.render)
}

// RenderIfNeeded runs a pass only when a re-render was requested.
func (d *Driver) RenderIfNeeded() bool {
	if !d.invalid {
		return false
	}
	d.Render()
	return true
}

func (d *Driver) Dispose() {
	d.scope.Dispose()
}
