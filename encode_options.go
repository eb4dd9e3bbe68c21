package qs

import (
	"fmt"
	"time"

	"go.codecgarden.dev/qs/internal/percent"
)

// ListFormat selects how Encode serializes a Sequence value.
type ListFormat int

const (
	// Indices emits "a[0]=b&a[1]=c". Default.
	Indices ListFormat = iota
	// Brackets emits "a[]=b&a[]=c".
	Brackets
	// Repeat emits "a=b&a=c".
	Repeat
	// Comma emits a single "a=b,c" pair.
	Comma
)

// Filter selects or rewrites values during encode: either a fixed list of
// top-level keys/indices to keep, or a callable invoked with (prefix,
// value) whose return value substitutes for the original.
type Filter struct {
	Keys []any
	Func func(prefix string, value any) any
}

// Encoder percent-encodes one scalar for Encode. Its failures propagate to
// the caller of Encode unwrapped, per spec.md §7: user-supplied callables
// are not wrapped.
type Encoder func(s string, charset percent.Charset, format percent.Format) (string, error)

// SerializeDate renders a time.Time to its scalar string form. The default
// is RFC 3339 (ISO 8601).
type SerializeDate func(t time.Time) string

// Sort orders keys at every level before descent. It must implement a
// total, stable order; ties keep their relative input order.
type Sort func(a, b string) int

// EncodeOptions is the validated, immutable configuration for Encode.
type EncodeOptions struct {
	Delimiter          string
	Encode             bool
	EncodeValuesOnly   bool
	EncodeDotInKeys    bool
	ListFormat         ListFormat
	CommaRoundTrip     bool
	CommaCompactNulls  bool
	AllowDots          bool
	AllowEmptyLists    bool
	AddQueryPrefix     bool
	SkipNulls          bool
	StrictNullHandling bool
	Charset            percent.Charset
	CharsetSentinel    bool
	Format             percent.Format
	SerializeDate      SerializeDate
	Encoder            Encoder
	Sort               Sort
	Filter             *Filter

	allowDotsSet bool
}

// EncodeOption configures an EncodeOptions.
type EncodeOption func(*EncodeOptions)

func defaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{
		Delimiter: "&",
		Encode:    true,
		Charset:   percent.UTF8,
		Format:    percent.RFC3986,
		SerializeDate: func(t time.Time) string {
			return t.UTC().Format(time.RFC3339Nano)
		},
	}
}

// WithEncodeDelimiter sets the pair delimiter (default "&").
func WithEncodeDelimiter(delimiter string) EncodeOption {
	return func(o *EncodeOptions) { o.Delimiter = delimiter }
}

// WithEncode toggles percent-encoding of keys and values (default true).
func WithEncode(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.Encode = enabled }
}

// WithEncodeValuesOnly restricts percent-encoding to values, leaving keys
// literal.
func WithEncodeValuesOnly(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.EncodeValuesOnly = enabled }
}

// WithEncodeDotInKeys percent-encodes a literal '.' within a dotted key
// segment (to %2E, then %252E once the whole key is percent-encoded).
// Requires AllowDots, either set explicitly or left to auto-enable.
func WithEncodeDotInKeys(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.EncodeDotInKeys = enabled }
}

// WithListFormat selects the Sequence serialization strategy.
func WithListFormat(format ListFormat) EncodeOption {
	return func(o *EncodeOptions) { o.ListFormat = format }
}

// WithIndices is a shorthand from spec.md §4.7: WithIndices(false) selects
// Repeat, matching the reference library's "indices=False" option.
func WithIndices(indices bool) EncodeOption {
	return func(o *EncodeOptions) {
		if indices {
			o.ListFormat = Indices
		} else {
			o.ListFormat = Repeat
		}
	}
}

// WithCommaRoundTrip makes a single-element Sequence encode as "a[]=v"
// under Comma format, so it decodes back to a one-element Sequence instead
// of a bare scalar.
func WithCommaRoundTrip(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.CommaRoundTrip = enabled }
}

// WithCommaCompactNulls omits null elements instead of emitting them as
// empty strings within a Comma-joined Sequence.
func WithCommaCompactNulls(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.CommaCompactNulls = enabled }
}

// WithEncodeAllowDots builds child keys with "a.b" dot notation instead of
// "a[b]" bracket notation.
func WithEncodeAllowDots(allow bool) EncodeOption {
	return func(o *EncodeOptions) {
		o.AllowDots = allow
		o.allowDotsSet = true
	}
}

// WithEncodeAllowEmptyLists emits "a[]" (no value) for an empty Sequence
// instead of omitting the key entirely.
func WithEncodeAllowEmptyLists(allow bool) EncodeOption {
	return func(o *EncodeOptions) { o.AllowEmptyLists = allow }
}

// WithAddQueryPrefix prepends '?' to the encoded string.
func WithAddQueryPrefix(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.AddQueryPrefix = enabled }
}

// WithSkipNulls omits a key entirely when its value is null (Go nil),
// instead of emitting "key=" or, under StrictNullHandling, bare "key".
func WithSkipNulls(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.SkipNulls = enabled }
}

// WithEncodeStrictNullHandling emits a bare "key" (no "=") for a null
// value instead of "key=".
func WithEncodeStrictNullHandling(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.StrictNullHandling = enabled }
}

// WithEncodeCharset selects the percent-encoding charset.
func WithEncodeCharset(charset percent.Charset) EncodeOption {
	return func(o *EncodeOptions) { o.Charset = charset }
}

// WithEncodeCharsetSentinel prepends a "utf8=<checkmark>" pair identifying
// the charset in use.
func WithEncodeCharsetSentinel(enabled bool) EncodeOption {
	return func(o *EncodeOptions) { o.CharsetSentinel = enabled }
}

// WithFormat selects the unreserved-character set and space encoding.
func WithFormat(format percent.Format) EncodeOption {
	return func(o *EncodeOptions) { o.Format = format }
}

// WithSerializeDate overrides how time.Time scalars render.
func WithSerializeDate(fn SerializeDate) EncodeOption {
	return func(o *EncodeOptions) { o.SerializeDate = fn }
}

// WithEncoder overrides the scalar percent-encoder.
func WithEncoder(fn Encoder) EncodeOption {
	return func(o *EncodeOptions) { o.Encoder = fn }
}

// WithSort orders keys at every level before descent.
func WithSort(fn Sort) EncodeOption {
	return func(o *EncodeOptions) { o.Sort = fn }
}

// WithFilter selects or rewrites values during traversal.
func WithFilter(f *Filter) EncodeOption {
	return func(o *EncodeOptions) { o.Filter = f }
}

// NewEncodeOptions builds and validates an EncodeOptions from opts, the
// same validation Encode performs internally.
func NewEncodeOptions(opts ...EncodeOption) (*EncodeOptions, error) {
	o := defaultEncodeOptions()

	for _, opt := range opts {
		opt(o)
	}

	if o.EncodeDotInKeys {
		if !o.allowDotsSet {
			o.AllowDots = true
		} else if !o.AllowDots {
			return nil, fmt.Errorf("%w: encode_dot_in_keys requires allow_dots", ErrInvalidOption)
		}
	}

	return o, nil
}
