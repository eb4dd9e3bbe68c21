package merge

import "strconv"

// Duplicates selects how two Values that land on the same key/index are
// reconciled, mirroring spec.md's duplicates option (C7).
type Duplicates int

const (
	// DuplicateCombine accumulates colliding scalars into a Sequence,
	// flattening if either side is already a Sequence. This is the default.
	DuplicateCombine Duplicates = iota
	// DuplicateFirst keeps the first value seen and discards later ones.
	DuplicateFirst
	// DuplicateLast overwrites with the most recently seen value.
	DuplicateLast
)

// Limits bounds the index-based coercions Merge performs.
type Limits struct {
	// ListLimit is the highest Sequence index a Mapping-of-indices may be
	// treated as sparse assignment onto rather than forcing a promotion to
	// a plain Mapping keyed by stringified index.
	ListLimit int
}

// Merge combines source into target using the recursive algebra described
// in spec.md §4.3 (C3): Mappings merge key-wise, Sequences merge
// index-wise, a Sequence absorbs an all-integer-key Mapping as a sparse
// assignment (promoting to a Mapping once any key falls outside
// limits.ListLimit), and any remaining scalar collision is resolved by the
// duplicates policy. limits.ListLimit bounds the Sequence/sparse-Mapping
// index rule only; exceeding it never produces an error, here or anywhere
// else in the decode pipeline.
//
// Merge is permitted to mutate and return target in place when target is a
// *OrderedMap or []any; callers that need the pre-merge value preserved
// must clone it first.
func Merge(target, source any, limits Limits, duplicates Duplicates) any {
	if IsUndefined(target) {
		return source
	}

	if IsUndefined(source) {
		return target
	}

	tm, tIsMap := target.(*OrderedMap)
	sm, sIsMap := source.(*OrderedMap)

	if tIsMap && sIsMap {
		return mergeMaps(tm, sm, limits, duplicates)
	}

	ts, tIsSeq := target.([]any)
	ss, sIsSeq := source.([]any)

	if tIsSeq && sIsSeq {
		return mergeSequences(ts, ss, limits, duplicates)
	}

	if tIsSeq && sIsMap {
		if allIndicesWithinLimit(sm, limits.ListLimit) {
			return mergeSequenceWithSparseMap(ts, sm, limits, duplicates)
		}

		return mergeMaps(arrayToOrderedMap(ts), sm, limits, duplicates)
	}

	if tIsMap && sIsSeq {
		return mergeMaps(tm, arrayToOrderedMap(ss), limits, duplicates)
	}

	return mergeOtherwise(target, source, duplicates)
}

func mergeMaps(t, s *OrderedMap, limits Limits, dup Duplicates) *OrderedMap {
	for _, k := range s.Keys() {
		sv, _ := s.Get(k)

		if tv, ok := t.Get(k); ok {
			t.Set(k, Merge(tv, sv, limits, dup))
		} else {
			t.Set(k, sv)
		}
	}

	return t
}

func mergeSequences(t, s []any, limits Limits, dup Duplicates) []any {
	n := len(t)
	if len(s) > n {
		n = len(s)
	}

	result := make([]any, n)

	for i := 0; i < n; i++ {
		tv, sv := any(Undefined), any(Undefined)

		if i < len(t) {
			tv = t[i]
		}

		if i < len(s) {
			sv = s[i]
		}

		result[i] = Merge(tv, sv, limits, dup)
	}

	return result
}

// mergeSequenceWithSparseMap treats s as a set of index assignments onto t,
// growing t (filling new slots with Undefined) to cover the highest index.
func mergeSequenceWithSparseMap(t []any, s *OrderedMap, limits Limits, dup Duplicates) []any {
	maxIdx := len(t) - 1

	for _, k := range s.Keys() {
		idx, _ := strconv.Atoi(k)
		if idx > maxIdx {
			maxIdx = idx
		}
	}

	result := make([]any, maxIdx+1)
	copy(result, t)

	for i := len(t); i < len(result); i++ {
		result[i] = Undefined
	}

	for _, k := range s.Keys() {
		idx, _ := strconv.Atoi(k)
		sv, _ := s.Get(k)

		tv := any(Undefined)
		if idx < len(result) {
			tv = result[idx]
		}

		result[idx] = Merge(tv, sv, limits, dup)
	}

	return result
}

// allIndicesWithinLimit reports whether every key of m is a non-negative
// integer string no greater than listLimit, the condition under which a
// Mapping merging into a Sequence is treated as sparse index assignment
// rather than forcing a promotion to a plain Mapping.
func allIndicesWithinLimit(m *OrderedMap, listLimit int) bool {
	for _, k := range m.Keys() {
		if !isNonNegativeIntString(k) {
			return false
		}

		idx, err := strconv.Atoi(k)
		if err != nil || idx > listLimit {
			return false
		}
	}

	return true
}

func isNonNegativeIntString(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return s == "0" || s[0] != '0'
}

// arrayToOrderedMap re-keys a Sequence by stringified index, discarding
// Undefined holes, so it can be merged key-wise with a Mapping.
func arrayToOrderedMap(seq []any) *OrderedMap {
	m := NewOrderedMap()

	for i, v := range seq {
		if IsUndefined(v) {
			continue
		}

		m.Set(strconv.Itoa(i), v)
	}

	return m
}

// mergeOtherwise resolves a collision that is neither Mapping-Mapping,
// Sequence-Sequence, nor Sequence-Mapping: two scalars, or a scalar against
// a structured Value produced by an earlier combine.
func mergeOtherwise(t, s any, dup Duplicates) any {
	switch dup {
	case DuplicateFirst:
		return t
	case DuplicateLast:
		return s
	default:
		return combineFlatten(t, s)
	}
}

// combineFlatten appends t then s into one Sequence, flattening either side
// that is already a Sequence so that three or more colliding duplicates
// accumulate into one flat list instead of nesting.
func combineFlatten(t, s any) []any {
	var out []any

	if ts, ok := t.([]any); ok {
		out = append(out, ts...)
	} else if !IsUndefined(t) {
		out = append(out, t)
	}

	if ss, ok := s.([]any); ok {
		out = append(out, ss...)
	} else if !IsUndefined(s) {
		out = append(out, s)
	}

	return out
}
