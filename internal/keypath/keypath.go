// Package keypath splits a decoded query-string key such as "a[b][c]" or
// (with dot notation) "a.b.c" into an ordered sequence of Segments, honoring
// depth and strict-depth limits.
package keypath

import (
	"errors"
	"regexp"
	"strings"
)

// ErrDepthExceeded is returned when strictDepth is set and the key contains
// well-formed bracket content beyond depth.
var ErrDepthExceeded = errors.New("input depth exceeded depth option and strictDepth is true")

// SegmentKind identifies the syntactic role of a Segment.
type SegmentKind int

const (
	// SegmentParent is the unbracketed leading name, e.g. "foo" in
	// "foo[bar][0]".
	SegmentParent SegmentKind = iota
	// SegmentIndexed is a bracketed numeric index, e.g. "[0]".
	SegmentIndexed
	// SegmentEmpty is an empty bracket pair, "[]".
	SegmentEmpty
	// SegmentNamed is a bracketed name, e.g. "[bar]".
	SegmentNamed
	// SegmentLiteral is a degenerate tail wrapped as a single literal
	// segment, either because it overflowed depth or because a bracket
	// group was left unterminated.
	SegmentLiteral
)

// Segment is one step of a KeyPath.
type Segment struct {
	Kind SegmentKind
	// Text is the segment's bare content: the parent name for
	// SegmentParent, or the text between the brackets for bracketed
	// kinds (SegmentLiteral's Text is the untokenized tail, unbracketed).
	Text string
}

var (
	dotRe     = regexp.MustCompile(`\.([^.\[]+)`)
	bracketRe = regexp.MustCompile(`\[[^\[\]]*\]`)
)

// Split parses key into a KeyPath. depth bounds the number of child
// (bracketed) segments consumed; any remainder is wrapped into one trailing
// SegmentLiteral. If strictDepth is true and well-formed bracket content
// remains beyond depth, Split returns ErrDepthExceeded. Unterminated bracket
// groups are never counted toward strict-depth enforcement: they are
// preserved as plain text in the trailing literal segment instead.
func Split(key string, depth int, allowDots, strictDepth bool) ([]Segment, error) {
	if key == "" {
		return nil, nil
	}

	if allowDots {
		key = expandDots(key)
	}

	loc := bracketRe.FindStringIndex(key)

	var parent string
	if depth > 0 && loc != nil {
		parent = key[:loc[0]]
	} else {
		parent = key
	}

	var segments []Segment
	if parent != "" {
		segments = append(segments, Segment{Kind: SegmentParent, Text: parent})
	}

	remaining := ""
	if loc != nil && depth > 0 {
		remaining = key[loc[0]:]
	}

	for i := 0; depth > 0 && i < depth; i++ {
		m := bracketRe.FindStringIndex(remaining)
		if m == nil {
			break
		}

		segments = append(segments, classify(remaining[m[0]:m[1]]))
		remaining = remaining[m[1]:]
	}

	if remaining != "" {
		if strictDepth && isWellFormedBracketTail(remaining) {
			return nil, ErrDepthExceeded
		}

		segments = append(segments, Segment{Kind: SegmentLiteral, Text: remaining})
	}

	return segments, nil
}

// classify turns a bracketed token ("[0]", "[]", "[name]") into a Segment.
func classify(token string) Segment {
	inner := token[1 : len(token)-1]

	switch {
	case inner == "":
		return Segment{Kind: SegmentEmpty, Text: ""}
	case isDecimalIndex(inner):
		return Segment{Kind: SegmentIndexed, Text: inner}
	default:
		return Segment{Kind: SegmentNamed, Text: inner}
	}
}

func isDecimalIndex(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	// Reject leading zeros other than "0" itself, matching JS Number
	// round-trip semantics used by the reference implementation.
	return s == "0" || s[0] != '0'
}

// isWellFormedBracketTail reports whether remaining begins with a properly
// closed "[...]" group. An unterminated group (no matching "]") is
// degenerate text, not a well-formed overflow segment.
func isWellFormedBracketTail(remaining string) bool {
	if !strings.HasPrefix(remaining, "[") {
		return false
	}

	return strings.ContainsRune(remaining, ']')
}

// expandDots rewrites ".name" runs into "[name]" wherever they occur in the
// key, matching the reference library's regex-based rewrite: a literal dot
// followed by a run of characters containing neither '.' nor '[' becomes a
// bracket segment. This deliberately also fires inside what looks like an
// already-bracketed segment (e.g. "a[b.c]" becomes "a[b[c]]"); percent-
// encoded dots (%2E) are kept out of this rewrite entirely by leaving them
// undecoded until after splitting when decode_dot_in_keys is set, which is
// the mechanism that lets literal dots survive inside bracket segments.
func expandDots(key string) string {
	return dotRe.ReplaceAllString(key, "[$1]")
}

// DecodeDotsInSegments normalizes percent-encoded dot escapes (%2E, %252E)
// inside already-split segment text to literal '.'. Callers must only do
// this when allow_dots is enabled, per the options invariant.
func DecodeDotsInSegments(segments []Segment) {
	for i := range segments {
		segments[i].Text = decodeDotEscapes(segments[i].Text)
	}
}

func decodeDotEscapes(s string) string {
	s = strings.ReplaceAll(s, "%2E", ".")
	s = strings.ReplaceAll(s, "%2e", ".")
	s = strings.ReplaceAll(s, "%252E", ".")
	s = strings.ReplaceAll(s, "%252e", ".")

	return s
}
