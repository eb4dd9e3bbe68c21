package qs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.codecgarden.dev/qs/internal/keypath"
	"go.codecgarden.dev/qs/internal/merge"
	"go.codecgarden.dev/qs/internal/percent"
)

// The charset-sentinel tokens: the literal key "utf8" paired with the
// checkmark encoded under UTF-8 or, as a numeric character reference,
// under Latin-1.
const (
	utf8SentinelPair   = "utf8=%E2%9C%93"
	latin1SentinelPair = "utf8=%26%2310003%3B"
)

// rawPair is one still-percent-encoded "key[=value]" token, after
// delimiter splitting but before key-path reconstruction.
type rawPair struct {
	key      string
	value    string
	hasValue bool
}

// Decode parses a raw application/x-www-form-urlencoded query string into
// an ordered Mapping, following the pipeline in spec.md §4.5: tokenize on
// delimiter, split each pair on the first '=', percent-decode key and
// value, split the key into a path, build a one-branch leaf tree per pair,
// merge all leaf trees together, and compact the result.
func Decode(input string, opts ...DecodeOption) (*OrderedMap, error) {
	o, err := NewDecodeOptions(opts...)
	if err != nil {
		return nil, err
	}

	return decodeString(input, o)
}

// DecodeMap accepts an already-tokenized map, such as one built by
// net/url.ParseQuery, and reconstructs the same nested structure Decode
// would, skipping the delimiter-split stage since the pairs are already
// separated. The query-prefix, parameter-limit and charset-sentinel stages
// are skipped as well, and keys are visited in Go's map iteration order, so
// the order of the result's keys is not defined.
func DecodeMap(input map[string][]string, opts ...DecodeOption) (*OrderedMap, error) {
	o, err := NewDecodeOptions(opts...)
	if err != nil {
		return nil, err
	}

	pairs := make([]rawPair, 0, len(input))

	for k, values := range input {
		if len(values) == 0 {
			pairs = append(pairs, rawPair{key: k})
			continue
		}

		for _, v := range values {
			pairs = append(pairs, rawPair{key: k, value: v, hasValue: true})
		}
	}

	return decodePairs(pairs, o)
}

func decodeString(input string, o *DecodeOptions) (*OrderedMap, error) {
	if o.IgnoreQueryPrefix {
		input = strings.TrimPrefix(input, "?")
	}

	if input == "" {
		return NewOrderedMap(), nil
	}

	var parts []string
	if o.DelimiterRegexp != nil {
		parts = o.DelimiterRegexp.Split(input, -1)
	} else {
		parts = strings.Split(input, o.Delimiter)
	}

	if o.ParameterLimit > 0 && len(parts) > o.ParameterLimit {
		if o.RaiseOnLimitExceeded {
			return nil, fmt.Errorf("%w: %d parameters exceeds limit of %d", ErrParameterLimitExceeded, len(parts), o.ParameterLimit)
		}

		parts = parts[:o.ParameterLimit]
	}

	charset := o.Charset

	if o.CharsetSentinel {
		for i, part := range parts {
			if !strings.HasPrefix(part, "utf8=") {
				continue
			}

			switch part {
			case utf8SentinelPair:
				charset = percent.UTF8
			case latin1SentinelPair:
				charset = percent.Latin1
			}

			parts = append(parts[:i], parts[i+1:]...)

			break
		}
	}

	pairs := make([]rawPair, 0, len(parts))

	for _, part := range parts {
		if part == "" {
			continue
		}

		pairs = append(pairs, splitPair(part))
	}

	if charset != o.Charset {
		co := *o
		co.Charset = charset
		o = &co
	}

	return decodePairs(pairs, o)
}

// splitPair splits a raw "key=value" token on the first '=', leaving both
// halves percent-encoded.
func splitPair(part string) rawPair {
	if eq := strings.IndexByte(part, '='); eq >= 0 {
		return rawPair{key: part[:eq], value: part[eq+1:], hasValue: true}
	}

	return rawPair{key: part}
}

func decodePairs(pairs []rawPair, o *DecodeOptions) (*OrderedMap, error) {
	limits := merge.Limits{ListLimit: o.ListLimit}

	acc := any(merge.Undefined)

	for _, p := range pairs {
		leaf, err := decodeLeaf(p, o)
		if err != nil {
			return nil, err
		}

		if merge.IsUndefined(leaf) {
			continue
		}

		acc = merge.Merge(acc, leaf, limits, o.Duplicates)
	}

	acc = merge.Compact(acc)

	if m, ok := acc.(*OrderedMap); ok {
		return m, nil
	}

	return NewOrderedMap(), nil
}

// decodeLeaf turns one raw pair into a single-branch leaf tree: a Mapping
// wrapping a Mapping wrapping ... the decoded scalar, shaped by the pair's
// KeyPath.
func decodeLeaf(p rawPair, o *DecodeOptions) (any, error) {
	decodedKey, err := decodeScalar(p.key, o, DecodeKindKey)
	if err != nil {
		return nil, err
	}

	var rawValue any

	switch {
	case !p.hasValue && o.StrictNullHandling:
		rawValue = nil
	case !p.hasValue:
		rawValue = ""
	default:
		rawValue = p.value
	}

	leafValue, err := decodeLeafValue(rawValue, o)
	if err != nil {
		return nil, err
	}

	path, err := keypath.Split(decodedKey, o.Depth, o.AllowDots, o.StrictDepth)
	if err != nil {
		if errors.Is(err, keypath.ErrDepthExceeded) {
			return nil, fmt.Errorf("%w: %d", ErrDepthExceeded, o.Depth)
		}

		return nil, err
	}

	if len(path) == 0 {
		// A key that decodes to the empty string has no parent to attach
		// a value to; the pair contributes nothing.
		return merge.Undefined, nil
	}

	if o.DecodeDotInKeys {
		keypath.DecodeDotsInSegments(path)
	}

	return buildLeaf(path, leafValue, o), nil
}

func decodeLeafValue(rawValue any, o *DecodeOptions) (any, error) {
	s, ok := rawValue.(string)
	if !ok {
		// Already a sentinel (explicit null); nothing left to decode.
		return rawValue, nil
	}

	if o.Comma && strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		values := make([]any, len(parts))

		for i, part := range parts {
			dv, err := decodeScalar(part, o, DecodeKindValue)
			if err != nil {
				return nil, err
			}

			values[i] = dv
		}

		return values, nil
	}

	return decodeScalar(s, o, DecodeKindValue)
}

// decodeScalar applies, in precedence order, a user Decoder, a user
// LegacyDecoder, or the built-in percent decoder (protecting dot escapes
// for key-kind decoding when DecodeDotInKeys is set), followed by numeric
// character reference interpretation if requested.
func decodeScalar(s string, o *DecodeOptions, kind DecodeKind) (string, error) {
	if o.Decoder != nil {
		return o.Decoder(s, o.Charset, kind)
	}

	if o.LegacyDecoder != nil {
		return o.LegacyDecoder(s, o.Charset)
	}

	var out string
	if kind == DecodeKindKey && o.DecodeDotInKeys {
		out = percent.DecodeKeepingDotEscapes(s, o.Charset)
	} else {
		out = percent.Decode(s, o.Charset)
	}

	if o.InterpretNumericEntities {
		out = percent.InterpretNumericEntities(out)
	}

	return out, nil
}

// buildLeaf walks path right to left, wrapping value in progressively
// outer Mappings/Sequences per segment kind, per spec.md §4.5 step 5e.
func buildLeaf(path []keypath.Segment, value any, o *DecodeOptions) any {
	v := value

	for i := len(path) - 1; i >= 1; i-- {
		seg := path[i]

		switch seg.Kind {
		case keypath.SegmentEmpty:
			v = buildEmptyBracket(v, o)
		case keypath.SegmentIndexed:
			v = buildIndexed(seg.Text, v, o)
		case keypath.SegmentNamed, keypath.SegmentLiteral:
			m := merge.NewOrderedMap()
			m.Set(seg.Text, v)
			v = m
		}
	}

	root := merge.NewOrderedMap()
	root.Set(path[0].Text, v)

	return root
}

func buildEmptyBracket(v any, o *DecodeOptions) any {
	if !o.ParseLists {
		m := merge.NewOrderedMap()
		m.Set("[]", v)

		return m
	}

	if o.AllowEmptyLists {
		if s, ok := v.(string); ok && s == "" {
			return []any{}
		}
	}

	return []any{v}
}

func buildIndexed(text string, v any, o *DecodeOptions) any {
	idx, err := strconv.Atoi(text)
	if err == nil && o.ParseLists && idx <= o.ListLimit {
		seq := make([]any, idx+1)
		for j := range seq {
			seq[j] = merge.Undefined
		}

		seq[idx] = v

		return seq
	}

	m := merge.NewOrderedMap()
	m.Set(text, v)

	return m
}
