package qs

import (
	"fmt"
	"regexp"

	"go.codecgarden.dev/qs/internal/merge"
	"go.codecgarden.dev/qs/internal/percent"
)

// DecodeKind tells a user-supplied Decoder which half of a "key=value" pair
// it is being asked to percent-decode.
type DecodeKind int

const (
	// DecodeKindKey is passed for the key half of a pair.
	DecodeKindKey DecodeKind = iota
	// DecodeKindValue is passed for the value half of a pair.
	DecodeKindValue
)

// Decoder percent-decodes one scalar. It returns a string for both kinds:
// the DecodeKindKey result is what the key-path splitter splits, and the
// DecodeKindValue result is stored as the leaf value unchanged. It cannot
// turn a value into a non-string type.
type Decoder func(s string, charset percent.Charset, kind DecodeKind) (string, error)

// LegacyDecoder is a narrower decoder signature kept for callers porting
// options that predate the Charset/DecodeKind parameters. Decoder takes
// precedence over LegacyDecoder, which takes precedence over the built-in
// decoder.
type LegacyDecoder func(s string, charset percent.Charset) (string, error)

// Duplicates selects how repeated keys are reconciled during decode.
type Duplicates = merge.Duplicates

const (
	// DuplicateCombine accumulates repeated keys into a Sequence. Default.
	DuplicateCombine = merge.DuplicateCombine
	// DuplicateFirst keeps only the first occurrence of a repeated key.
	DuplicateFirst = merge.DuplicateFirst
	// DuplicateLast keeps only the last occurrence of a repeated key.
	DuplicateLast = merge.DuplicateLast
)

// DecodeOptions is the validated, immutable configuration for Decode and
// DecodeMap. Decode and DecodeMap build one from the DecodeOption values
// they are passed; NewDecodeOptions builds the same record so it can be
// inspected ahead of time.
type DecodeOptions struct {
	Delimiter                string
	DelimiterRegexp          *regexp.Regexp
	Depth                    int
	ListLimit                int
	ParameterLimit           int
	ParseLists               bool
	AllowDots                bool
	DecodeDotInKeys          bool
	AllowEmptyLists          bool
	Charset                  percent.Charset
	CharsetSentinel          bool
	InterpretNumericEntities bool
	Comma                    bool
	Duplicates               Duplicates
	StrictNullHandling       bool
	StrictDepth              bool
	RaiseOnLimitExceeded     bool
	IgnoreQueryPrefix        bool
	Decoder                  Decoder
	LegacyDecoder            LegacyDecoder

	allowDotsSet bool
}

// DecodeOption configures a DecodeOptions.
type DecodeOption func(*DecodeOptions)

func defaultDecodeOptions() *DecodeOptions {
	return &DecodeOptions{
		Delimiter:      "&",
		Depth:          5,
		ListLimit:      20,
		ParameterLimit: 1000,
		ParseLists:     true,
		Charset:        percent.UTF8,
		Duplicates:     DuplicateCombine,
	}
}

// WithDelimiter sets the pair delimiter (default "&").
func WithDelimiter(delimiter string) DecodeOption {
	return func(o *DecodeOptions) { o.Delimiter = delimiter }
}

// WithDelimiterRegexp sets a regular-expression delimiter, taking
// precedence over WithDelimiter when both are given.
func WithDelimiterRegexp(re *regexp.Regexp) DecodeOption {
	return func(o *DecodeOptions) { o.DelimiterRegexp = re }
}

// WithDepth bounds the number of bracketed child segments consumed from a
// key before the remainder is folded into one trailing literal segment.
func WithDepth(depth int) DecodeOption {
	return func(o *DecodeOptions) { o.Depth = depth }
}

// WithListLimit sets the highest Sequence index decode will build before
// demoting a mapping-like key set to a plain Mapping.
func WithListLimit(limit int) DecodeOption {
	return func(o *DecodeOptions) { o.ListLimit = limit }
}

// WithParameterLimit bounds the number of top-level pairs decoded.
func WithParameterLimit(limit int) DecodeOption {
	return func(o *DecodeOptions) { o.ParameterLimit = limit }
}

// WithParseLists toggles whether bracketed numeric/empty indices build
// Sequences at all; false keeps them as Mapping keys instead.
func WithParseLists(parse bool) DecodeOption {
	return func(o *DecodeOptions) { o.ParseLists = parse }
}

// WithAllowDots enables "a.b.c" dot notation as an alternative to
// "a[b][c]" bracket notation.
func WithAllowDots(allow bool) DecodeOption {
	return func(o *DecodeOptions) {
		o.AllowDots = allow
		o.allowDotsSet = true
	}
}

// WithDecodeDotInKeys enables normalizing percent-encoded dot escapes
// (%2E, %252E) inside a key back to a literal '.' after path splitting.
// Requires AllowDots, either set explicitly or left to auto-enable.
func WithDecodeDotInKeys(decode bool) DecodeOption {
	return func(o *DecodeOptions) { o.DecodeDotInKeys = decode }
}

// WithAllowEmptyLists makes "a[]" with an empty value decode to an empty
// Sequence instead of a one-element Sequence holding the empty string.
func WithAllowEmptyLists(allow bool) DecodeOption {
	return func(o *DecodeOptions) { o.AllowEmptyLists = allow }
}

// WithCharset selects the percent-decoding charset.
func WithCharset(charset percent.Charset) DecodeOption {
	return func(o *DecodeOptions) { o.Charset = charset }
}

// WithCharsetSentinel enables scanning for a "utf8=<checkmark>" pair that
// overrides Charset based on which encoding of the checkmark is present.
func WithCharsetSentinel(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.CharsetSentinel = enabled }
}

// WithInterpretNumericEntities replaces "&#N;" numeric character
// references with their code point after percent-decoding.
func WithInterpretNumericEntities(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.InterpretNumericEntities = enabled }
}

// WithComma splits a comma-containing value into a Sequence of strings.
func WithComma(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.Comma = enabled }
}

// WithDuplicates selects the policy for reconciling a repeated key.
func WithDuplicates(d Duplicates) DecodeOption {
	return func(o *DecodeOptions) { o.Duplicates = d }
}

// WithStrictNullHandling makes a pair with no "=" decode to an explicit
// null instead of an empty string.
func WithStrictNullHandling(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.StrictNullHandling = enabled }
}

// WithStrictDepth makes bracket nesting beyond Depth fail with
// ErrDepthExceeded instead of collapsing into a literal trailing segment.
func WithStrictDepth(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.StrictDepth = enabled }
}

// WithRaiseOnLimitExceeded makes exceeding ParameterLimit fail with
// ErrParameterLimitExceeded instead of silently truncating. Depth overflow
// is governed by WithStrictDepth alone.
func WithRaiseOnLimitExceeded(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.RaiseOnLimitExceeded = enabled }
}

// WithIgnoreQueryPrefix drops a single leading '?' before tokenizing.
func WithIgnoreQueryPrefix(enabled bool) DecodeOption {
	return func(o *DecodeOptions) { o.IgnoreQueryPrefix = enabled }
}

// WithDecoder installs a user-supplied scalar decoder, taking precedence
// over WithLegacyDecoder and the built-in decoder.
func WithDecoder(d Decoder) DecodeOption {
	return func(o *DecodeOptions) { o.Decoder = d }
}

// WithLegacyDecoder installs a Charset-only scalar decoder, used only when
// no Decoder is set.
func WithLegacyDecoder(d LegacyDecoder) DecodeOption {
	return func(o *DecodeOptions) { o.LegacyDecoder = d }
}

// NewDecodeOptions builds and validates a DecodeOptions from opts, the same
// validation Decode and DecodeMap perform internally. Exported so CLI-style
// flag binding can construct and inspect a DecodeOptions ahead of time, the
// way pflag-bound config structs are built before being handed to the
// generator they configure.
func NewDecodeOptions(opts ...DecodeOption) (*DecodeOptions, error) {
	o := defaultDecodeOptions()

	for _, opt := range opts {
		opt(o)
	}

	if o.DecodeDotInKeys {
		if !o.allowDotsSet {
			o.AllowDots = true
		} else if !o.AllowDots {
			return nil, fmt.Errorf("%w: decode_dot_in_keys requires allow_dots", ErrInvalidOption)
		}
	}

	return o, nil
}
