// Package qs implements a bidirectional codec for
// application/x-www-form-urlencoded query strings that support nested
// mappings and ordered sequences via bracket and/or dot notation. It is a
// Go port of the de-facto JavaScript "qs" library's semantics: the same
// option surface, the same list-format strategies, and the same
// type-coercion rules between lists and mappings during decode.
//
// # Decoder Pipeline
//
// [Decode] processes a raw query string through six stages:
//
//  1. Strip a leading '?' when IgnoreQueryPrefix is set.
//  2. Split on Delimiter (or DelimiterRegexp), then enforce
//     ParameterLimit: truncate silently, or fail with
//     [ErrParameterLimitExceeded] when RaiseOnLimitExceeded is set.
//  3. Scan for a "utf8=<checkmark>" sentinel pair when CharsetSentinel is
//     set, overriding Charset and removing that pair from the stream.
//  4. For each remaining pair: split once on '=', percent-decode the key
//     and value (splitting the value on ',' first when Comma is set),
//     and split the decoded key into a path via internal/keypath.
//  5. Build a single-branch leaf tree from each pair's path and merge it
//     into an accumulator via internal/merge, which owns the list/mapping
//     coercion and duplicate-key policy.
//  6. Compact the accumulator, removing sparse-sequence holes, and return
//     it as an [*OrderedMap].
//
// [DecodeMap] skips stages 1 to 3: it accepts an already-tokenized
// map[string][]string, the shape net/url.ParseQuery returns, so callers
// that already parsed a URL don't have to re-serialize it to a string
// first to get this package's nested-structure reconstruction.
// IgnoreQueryPrefix, ParameterLimit and CharsetSentinel have no effect on
// it.
//
// # Encoder Pipeline
//
// [Encode] walks value recursively, building "key=value" fragments in
// observed key order (or Sort's order, applied at every level before
// descent) and joining them with Delimiter. Mappings build child keys per
// AllowDots; Sequences serialize per ListFormat (Indices, Brackets, Repeat,
// or Comma, with Comma's special single-element and nested-non-scalar
// cases). A container's identity is tracked for the duration of its
// traversal via internal/identity so that a cyclic input graph fails with
// [ErrCircularReference] instead of recursing forever.
//
// # Errors
//
// Four sentinel errors in three kinds, wrapped with fmt.Errorf and %w at the
// point of detection:
//
//   - [ErrInvalidOption]: an option record is internally inconsistent,
//     e.g. DecodeDotInKeys set explicitly against AllowDots(false).
//   - [ErrParameterLimitExceeded] / [ErrDepthExceeded]: a configured limit
//     was exceeded and the corresponding raise/strict flag was set.
//   - [ErrCircularReference]: Encode's input graph contains a cycle.
//
// User-supplied callables (Decoder, Encoder, Filter, Sort, SerializeDate)
// are never wrapped; their failures propagate to the caller verbatim.
package qs
