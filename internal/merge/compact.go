package merge

// Compact walks v post-order and drops every Undefined hole from Sequences,
// closing the gaps left by sparse-index assignment while preserving the
// remaining elements' relative order (C4). Mappings and their values are
// compacted recursively in place; Mappings are never reinterpreted as
// Sequences here, that promotion is Merge's job, not Compact's.
func Compact(v any) any {
	switch val := v.(type) {
	case *OrderedMap:
		for _, k := range val.Keys() {
			cv, _ := val.Get(k)
			val.Set(k, Compact(cv))
		}

		return val
	case []any:
		out := make([]any, 0, len(val))

		for _, item := range val {
			if IsUndefined(item) {
				continue
			}

			out = append(out, Compact(item))
		}

		return out
	default:
		return v
	}
}
