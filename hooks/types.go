package hooks

type slotKind uint8

const (
	slotState slotKind = iota + 1
	slotRef
	slotMemo
	slotEffect
	slotAsync
	slotReducer
)

func (k slotKind) String() string {
	switch k {
	case slotState:
		return "state"
	case slotRef:
		return "ref"
	case slotMemo:
		return "memo"
	case slotEffect:
		return "effect"
	case slotAsync:
		return "async"
	case slotReducer:
		return "reducer"
	default:
		return "unknown"
	}
}

// slot is one persistent unit of hook state owned by a Scope. Its kind and
// typed cell are fixed at allocation; every live slot must be revisited on
// every pass while the scope is alive.
type slot struct {
	key  string
	kind slotKind

	// pass the slot was last visited on, for duplicate and revisit checks.
	pass uint64

	// cell is the kind-specific payload allocated at the first visit.
	cell any

	// deps is the update-strategy key stored for memo/effect/async slots.
	deps    Deps
	hasDeps bool

	// cleanup left behind by the previous effect body, if any.
	cleanup Cleanup
}

type stateCell[T any] struct {
	value T
}

type memoCell[T any] struct {
	value T
}

type reducerCell[S, A any] struct {
	state   S
	reducer func(S, A) S
}

type effectCell struct{}
