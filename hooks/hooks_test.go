package hooks_test

import (
	"testing"

	"github.com/NguyenPhongVN/gohooks/hooks"
	"github.com/stretchr/testify/assert"
)

func TestUseState(t *testing.T) {
	t.Run("persists across passes, initial used once", func(t *testing.T) {
		rt := hooks.NewRuntime()
		initial := 1
		var counter *hooks.State[int]
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			counter = hooks.UseState(s, "count", initial)
		})

		d.Render()
		counter.Set(10)
		initial = 99
		d.Render()
		assert.Equal(t, 10, counter.Value())
	})

	t.Run("set requests a re-render", func(t *testing.T) {
		rt := hooks.NewRuntime()
		var counter *hooks.State[int]
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			counter = hooks.UseState(s, "count", 0)
		})

		d.Render()
		counter.Set(1)
		assert.True(t, d.Invalid())
		assert.True(t, d.RenderIfNeeded())
		assert.Equal(t, 2, d.Passes())
	})
}

func TestUseRef(t *testing.T) {
	t.Run("writes never request a re-render", func(t *testing.T) {
		rt := hooks.NewRuntime()
		var frames *hooks.Ref[int]
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			frames = hooks.UseRef(s, "frames", 0)
		})

		d.Render()
		frames.Current = 120
		assert.False(t, d.Invalid())

		d.Render()
		assert.Equal(t, 120, frames.Current)
	})
}

func TestUseReducer(t *testing.T) {
	type action struct {
		delta int
	}
	sum := func(total int, a action) int { return total + a.delta }

	t.Run("dispatch advances state through the transition function", func(t *testing.T) {
		rt := hooks.NewRuntime()
		var total int
		var dispatch func(action)
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			total, dispatch = hooks.UseReducer(s, "total", sum, 0)
		})

		d.Render()
		assert.Equal(t, 0, total)

		dispatch(action{delta: 3})
		dispatch(action{delta: 4})
		assert.True(t, d.RenderIfNeeded())
		assert.Equal(t, 7, total)
		assert.Equal(t, 2, d.Passes())
	})
}

func TestUseContext(t *testing.T) {
	theme := hooks.NewContextKey("theme", "light")

	t.Run("falls back to the default without a resolver", func(t *testing.T) {
		rt := hooks.NewRuntime()
		var got string
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			got = hooks.UseContext(s, theme)
		})

		d.Render()
		assert.Equal(t, "light", got)
	})

	t.Run("resolves the nearest provided value", func(t *testing.T) {
		rt := hooks.NewRuntime()
		root := hooks.NewContextValues(nil)
		hooks.SetContextValue(root, theme, "dark")

		var got string
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			got = hooks.UseContext(s, theme)
		})
		d.Scope().WithResolver(root)

		d.Render()
		assert.Equal(t, "dark", got)
	})

	t.Run("child providers shadow their parents", func(t *testing.T) {
		size := hooks.NewContextKey("font-size", 12)
		root := hooks.NewContextValues(nil)
		hooks.SetContextValue(root, theme, "dark")
		hooks.SetContextValue(root, size, 14)
		child := hooks.NewContextValues(root)
		hooks.SetContextValue(child, theme, "sepia")

		rt := hooks.NewRuntime()
		var gotTheme string
		var gotSize int
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			gotTheme = hooks.UseContext(s, theme)
			gotSize = hooks.UseContext(s, size)
		})
		d.Scope().WithResolver(child)

		d.Render()
		assert.Equal(t, "sepia", gotTheme)
		assert.Equal(t, 14, gotSize)
	})

	t.Run("keys with the same name share an identity", func(t *testing.T) {
		other := hooks.NewContextKey("theme", "unset")
		root := hooks.NewContextValues(nil)
		hooks.SetContextValue(root, theme, "dark")

		rt := hooks.NewRuntime()
		var got string
		d := hooks.NewDriver(rt, func(s *hooks.Scope) {
			got = hooks.UseContext(s, other)
		})
		d.Scope().WithResolver(root)

		d.Render()
		assert.Equal(t, "dark", got)
	})
}
