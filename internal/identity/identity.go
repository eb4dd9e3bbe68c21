// Package identity implements a call-scoped side channel for detecting
// cyclic container graphs by pointer identity rather than value equality,
// standing in for the weak-map the reference implementation uses, since Go
// has neither a WeakMap nor built-in identity hashing for maps/slices.
package identity

import "reflect"

// Set tracks the containers currently being descended into during one
// encode call. It is allocated fresh per top-level Encode and discarded
// when that call returns, satisfying the "automatic cleanup" and "never
// retain input containers beyond the current call" requirements without a
// garbage-collector hook: a uintptr map key pins nothing, and the Set
// itself outlives nothing past the call that created it.
type Set struct {
	refs map[uintptr]int
}

// NewSet returns an empty identity Set.
func NewSet() *Set {
	return &Set{refs: make(map[uintptr]int)}
}

// Enter records v as currently being descended into and reports whether it
// was already present (a cycle). Non-identifiable values (anything other
// than a map, slice, or pointer) are never considered cyclic and always
// report false.
func (s *Set) Enter(v any) bool {
	ptr, ok := pointerOf(v)
	if !ok {
		return false
	}

	present := s.refs[ptr] > 0
	s.refs[ptr]++

	return present
}

// Leave undoes the bookkeeping an Enter call performed for v. It must be
// called exactly once per successful Enter, typically via defer, so that a
// container visited twice at sibling (non-cyclic) positions is forgotten
// between visits.
func (s *Set) Leave(v any) {
	ptr, ok := pointerOf(v)
	if !ok {
		return
	}

	if s.refs[ptr] <= 1 {
		delete(s.refs, ptr)
	} else {
		s.refs[ptr]--
	}
}

// pointerOf extracts the identity of v, if it has one. Maps, slices, and
// pointers are the only composite kinds that can participate in a cycle;
// everything else (scalars, strings, interfaces holding scalars) is
// reported as having no identity.
func pointerOf(v any) (uintptr, bool) {
	if v == nil {
		return 0, false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map, reflect.Ptr, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}

		return rv.Pointer(), true
	default:
		return 0, false
	}
}
