package hooks

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type depsKind uint8

const (
	depsValues depsKind = iota
	depsAlways
	depsOnce
)

// Deps is an equality-comparable fingerprint attached to memo, effect and
// async slots. A slot recomputes when its new key differs from the stored one,
// always recomputes under Always, and never recomputes after the first pass
// under Once.
type Deps struct {
	kind depsKind
	sum  uint64
}

// DepsOf fingerprints a tuple of values. Two calls with tuples that format
// identically produce equal keys.
func DepsOf(values ...any) Deps {
	d := xxhash.New()
	for i, v := range values {
		fmt.Fprintf(d, "%d:%T:%#v;", i, v, v)
	}
	return Deps{kind: depsValues, sum: d.Sum64()}
}

// Always recomputes on every pass.
func Always() Deps {
	return Deps{kind: depsAlways}
}

// Once recomputes on the first pass only.
func Once() Deps {
	return Deps{kind: depsOnce}
}

type decision uint8

const (
	skip decision = iota
	recompute
)

// evaluate applies the update-strategy table against the key stored in the
// slot, overwriting the stored key before returning when the decision is to
// recompute.
func (sl *slot) evaluate(next Deps) decision {
	if !sl.hasDeps {
		sl.hasDeps = true
		sl.deps = next
		return recompute
	}
	switch next.kind {
	case depsAlways:
		sl.deps = next
		return recompute
	case depsOnce:
		return skip
	default:
		if sl.deps.kind == depsValues && sl.deps.sum == next.sum {
			return skip
		}
		sl.deps = next
		return recompute
	}
}
