package qs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.codecgarden.dev/qs/internal/identity"
	"go.codecgarden.dev/qs/internal/percent"
)

// seqEntry pairs a Sequence element with the index it is emitted under,
// which may differ from its position in entries once a Filter.Keys index
// list has restricted and reordered the root Sequence.
type seqEntry struct {
	idx   int
	value any
}

// Encode serializes value to a query string, following the pipeline in
// spec.md §4.6: optional query prefix and charset sentinel, then a
// recursive traversal building "key=value" fragments joined by Delimiter.
func Encode(value any, opts ...EncodeOption) (string, error) {
	o, err := NewEncodeOptions(opts...)
	if err != nil {
		return "", err
	}

	ids := identity.NewSet()

	fragments, err := encodeValue("", value, o, ids, true)
	if err != nil {
		return "", err
	}

	if o.CharsetSentinel {
		sentinel := utf8SentinelPair
		if o.Charset == percent.Latin1 {
			sentinel = latin1SentinelPair
		}

		fragments = append([]string{sentinel}, fragments...)
	}

	out := strings.Join(fragments, o.Delimiter)

	if o.AddQueryPrefix {
		return "?" + out, nil
	}

	return out, nil
}

func encodeValue(key string, value any, o *EncodeOptions, ids *identity.Set, isRoot bool) ([]string, error) {
	value = applyFilter(o, key, value)

	switch v := value.(type) {
	case *OrderedMap:
		keys := v.Keys()
		if o.Sort != nil {
			keys = sortStrings(keys, o.Sort)
		}

		if isRoot {
			keys = restrictMapKeys(keys, o)
		}

		return encodeMappingKeys(key, keys, func(k string) (any, bool) { return v.Get(k) }, value, o, ids)
	case map[string]any:
		keys := sortedMapKeys(v, o)
		if isRoot {
			keys = restrictMapKeys(keys, o)
		}

		return encodeMappingKeys(key, keys, func(k string) (any, bool) { val, ok := v[k]; return val, ok }, value, o, ids)
	case []any:
		var restrict []any
		if isRoot && o.Filter != nil {
			restrict = o.Filter.Keys
		}

		return encodeSequence(key, v, value, restrict, o, ids)
	case nil:
		if isRoot {
			return nil, nil
		}

		if o.SkipNulls {
			return nil, nil
		}

		return encodeNull(key, o)
	default:
		if isRoot {
			return nil, nil
		}

		return encodeScalarKV(key, value, o)
	}
}

func applyFilter(o *EncodeOptions, prefix string, value any) any {
	if o.Filter != nil && o.Filter.Func != nil {
		return o.Filter.Func(prefix, value)
	}

	return value
}

func restrictMapKeys(keys []string, o *EncodeOptions) []string {
	if o.Filter == nil || o.Filter.Keys == nil {
		return keys
	}

	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	var out []string

	for _, r := range o.Filter.Keys {
		if s, ok := r.(string); ok && present[s] {
			out = append(out, s)
		}
	}

	return out
}

func sortedMapKeys(m map[string]any, o *EncodeOptions) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	if o.Sort != nil {
		return sortStrings(keys, o.Sort)
	}

	// No comparator given: iterate in Go's (randomized) map order, per
	// this package's documented accommodation for plain map[string]any
	// roots that don't carry their own ordering.
	return keys
}

func sortStrings(keys []string, cmp Sort) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool { return cmp(out[i], out[j]) < 0 })

	return out
}

func encodeMappingKeys(prefix string, keys []string, get func(string) (any, bool), container any, o *EncodeOptions, ids *identity.Set) ([]string, error) {
	if ids.Enter(container) {
		return nil, fmt.Errorf("%w", ErrCircularReference)
	}

	defer ids.Leave(container)

	var fragments []string

	for _, k := range keys {
		v, ok := get(k)
		if !ok {
			continue
		}

		childKey := buildMappingKey(prefix, k, o)

		frag, err := encodeValue(childKey, v, o, ids, false)
		if err != nil {
			return nil, err
		}

		fragments = append(fragments, frag...)
	}

	return fragments, nil
}

// buildMappingKey composes the child key text for name under prefix,
// percent-encoding a literal '.' in name to "%2E" first when
// EncodeDotInKeys is set, so that a subsequent whole-key percent-encoding
// pass (at the leaf) turns it into "%252E" rather than colliding with the
// dot-notation separator.
func buildMappingKey(prefix, name string, o *EncodeOptions) string {
	k := name
	if o.EncodeDotInKeys {
		k = strings.ReplaceAll(k, ".", "%2E")
	}

	if prefix == "" {
		return k
	}

	if o.AllowDots {
		return prefix + "." + k
	}

	return prefix + "[" + k + "]"
}

func encodeSequence(prefix string, items []any, container any, restrict []any, o *EncodeOptions, ids *identity.Set) ([]string, error) {
	if ids.Enter(container) {
		return nil, fmt.Errorf("%w", ErrCircularReference)
	}

	defer ids.Leave(container)

	var entries []seqEntry

	if restrict != nil {
		for _, r := range restrict {
			if idx, ok := toInt(r); ok && idx >= 0 && idx < len(items) {
				entries = append(entries, seqEntry{idx: idx, value: items[idx]})
			}
		}
	} else {
		for i, v := range items {
			entries = append(entries, seqEntry{idx: i, value: v})
		}
	}

	if len(entries) == 0 {
		if o.AllowEmptyLists {
			frag, err := emptyListFragment(prefix, o)
			if err != nil {
				return nil, err
			}

			return []string{frag}, nil
		}

		return nil, nil
	}

	if o.ListFormat == Comma {
		return encodeComma(prefix, entries, o, ids)
	}

	var fragments []string

	for _, e := range entries {
		childKey := buildSequenceKey(prefix, e.idx, o)

		frag, err := encodeValue(childKey, e.value, o, ids, false)
		if err != nil {
			return nil, err
		}

		fragments = append(fragments, frag...)
	}

	return fragments, nil
}

func buildSequenceKey(prefix string, idx int, o *EncodeOptions) string {
	switch o.ListFormat {
	case Brackets:
		return prefix + "[]"
	case Repeat:
		return prefix
	case Indices:
		fallthrough
	default:
		return fmt.Sprintf("%s[%d]", prefix, idx)
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// encodeComma implements the COMMA list format's special cases: a nested
// non-scalar element forces a fall back to per-element (Indices-style)
// serialization; a lone element only collapses to "prefix[]=val" when
// CommaRoundTrip is set; nulls are kept as empty fields unless
// CommaCompactNulls drops them.
func encodeComma(prefix string, entries []seqEntry, o *EncodeOptions, ids *identity.Set) ([]string, error) {
	allScalar := true

	for _, e := range entries {
		switch e.value.(type) {
		case *OrderedMap, map[string]any, []any:
			allScalar = false
		}
	}

	if !allScalar {
		var fragments []string

		for _, e := range entries {
			childKey := fmt.Sprintf("%s[%d]", prefix, e.idx)

			frag, err := encodeValue(childKey, e.value, o, ids, false)
			if err != nil {
				return nil, err
			}

			fragments = append(fragments, frag...)
		}

		return fragments, nil
	}

	if len(entries) == 1 && o.CommaRoundTrip {
		return encodeValue(prefix+"[]", entries[0].value, o, ids, false)
	}

	var parts []string

	for _, e := range entries {
		if e.value == nil {
			if o.CommaCompactNulls {
				continue
			}

			parts = append(parts, "")

			continue
		}

		s, err := scalarToString(e.value, o)
		if err != nil {
			return nil, err
		}

		parts = append(parts, s)
	}

	joined := strings.Join(parts, ",")

	encKey, encVal, err := encodePair(prefix, joined, o)
	if err != nil {
		return nil, err
	}

	return []string{encKey + "=" + encVal}, nil
}

func emptyListFragment(prefix string, o *EncodeOptions) (string, error) {
	keyText := prefix + "[]"

	if o.Encode && !o.EncodeValuesOnly {
		return encodeScalarText(keyText, o)
	}

	return keyText, nil
}

func encodeNull(key string, o *EncodeOptions) ([]string, error) {
	encKey := key

	if o.Encode && !o.EncodeValuesOnly {
		var err error

		encKey, err = encodeScalarText(key, o)
		if err != nil {
			return nil, err
		}
	}

	if o.StrictNullHandling {
		return []string{encKey}, nil
	}

	return []string{encKey + "="}, nil
}

func encodeScalarKV(key string, value any, o *EncodeOptions) ([]string, error) {
	s, err := scalarToString(value, o)
	if err != nil {
		return nil, err
	}

	encKey, encVal, err := encodePair(key, s, o)
	if err != nil {
		return nil, err
	}

	return []string{encKey + "=" + encVal}, nil
}

func encodePair(key, value string, o *EncodeOptions) (string, string, error) {
	encKey := key
	encVal := value

	if o.Encode {
		var err error

		if !o.EncodeValuesOnly {
			encKey, err = encodeScalarText(key, o)
			if err != nil {
				return "", "", err
			}
		}

		encVal, err = encodeScalarText(value, o)
		if err != nil {
			return "", "", err
		}
	}

	return encKey, encVal, nil
}

func encodeScalarText(s string, o *EncodeOptions) (string, error) {
	if o.Encoder != nil {
		return o.Encoder(s, o.Charset, o.Format)
	}

	return percent.Encode(s, o.Charset, o.Format), nil
}

// scalarToString renders a non-container Value as text. Strings, bools,
// the built-in numeric kinds, and time.Time (via SerializeDate) have
// defined renderings; anything else falls back to fmt.Sprint, matching
// spec.md §4.1's allowance for "a domain-specific opaque object the user
// supplies".
func scalarToString(v any, o *EncodeOptions) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		if val {
			return "true", nil
		}

		return "false", nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case time.Time:
		return o.SerializeDate(val), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return fmt.Sprint(val), nil
	}
}
