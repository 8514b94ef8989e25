package hooks

import "github.com/cespare/xxhash/v2"

// ContextResolver resolves the nearest ancestor-provided value for a key id.
// Walking the ancestor chain belongs to the host; the runtime only consumes
// the lookup.
type ContextResolver interface {
	Resolve(id uint64) (any, bool)
}

// ContextKey names a typed context slot. Ids are stable hashes of the name,
// so independently constructed keys with the same name resolve identically.
type ContextKey[T any] struct {
	id           uint64
	name         string
	defaultValue T
}

func NewContextKey[T any](name string, defaultValue T) *ContextKey[T] {
	return &ContextKey[T]{
		id:           xxhash.Sum64String(name),
		name:         name,
		defaultValue: defaultValue,
	}
}

func (k *ContextKey[T]) Name() string {
	return k.name
}

// ContextValues is a map-backed resolver chained to an optional parent. Hosts
// use it as the provider side of context propagation: one per provider node,
// parented to the next provider up the tree.
type ContextValues struct {
	parent ContextResolver
	values map[uint64]any
}

func NewContextValues(parent ContextResolver) *ContextValues {
	return &ContextValues{parent: parent, values: map[uint64]any{}}
}

func (cv *ContextValues) Resolve(id uint64) (any, bool) {
	if v, ok := cv.values[id]; ok {
		return v, true
	}
	if cv.parent != nil {
		return cv.parent.Resolve(id)
	}
	return nil, false
}

// SetContextValue provides a value for key at cv's position in the chain.
func SetContextValue[T any](cv *ContextValues, key *ContextKey[T], value T) {
	cv.values[key.id] = value
}
