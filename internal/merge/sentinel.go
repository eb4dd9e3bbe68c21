package merge

// undefinedValue is the internal marker for a sparse-sequence hole: a slot
// that was created by index arithmetic but never actually assigned. The
// compactor removes it; nothing else should observe it escape Merge/Compact.
type undefinedValue struct{}

// Undefined is the Undefined sentinel from spec.md's data model.
var Undefined any = undefinedValue{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}

// Explicit null (produced by strict_null_handling on a bare "key" parameter
// with no "=") is represented as a plain Go nil, not a distinct sentinel
// type: nil is already distinguishable from both an empty string and the
// Undefined hole marker, and using it directly means Decode's output feeds
// straight back into Encode without a translation step, since Encode also
// treats a Go nil scalar as the Value model's null.
