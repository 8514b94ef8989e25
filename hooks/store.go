package hooks

import "fmt"

// useSlot returns the slot recorded under key, allocating it on the first
// visit. Identity is the caller-supplied key, so hook calls may reorder
// between passes, but a live slot that a pass skips, a key used twice in one
// pass, or a kind change at a key is a programming-contract violation and
// panics.
func (s *Scope) useSlot(key string, kind slotKind, init func() any) *slot {
	if s.disposed {
		panic("hooks: hook called on a disposed scope")
	}
	if !s.rendering {
		panic("hooks: hook called outside a render pass")
	}
	if sl, ok := s.slots[key]; ok {
		if sl.kind != kind {
			panic(fmt.Sprintf("hooks: slot %q allocated as %s, requested as %s", key, sl.kind, kind))
		}
		if sl.pass == s.pass {
			panic(fmt.Sprintf("hooks: slot %q used twice in one pass", key))
		}
		sl.pass = s.pass
		return sl
	}
	sl := &slot{key: key, kind: kind, pass: s.pass, cell: init()}
	s.slots[key] = sl
	s.order = append(s.order, sl)
	return sl
}

// cellOf recovers the typed cell fixed at the slot's allocation.
func cellOf[C any](sl *slot) *C {
	cell, ok := sl.cell.(*C)
	if !ok {
		panic(fmt.Sprintf("hooks: slot %q holds a %T, requested a %T", sl.key, sl.cell, (*C)(nil)))
	}
	return cell
}
