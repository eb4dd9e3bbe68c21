// Package qstest provides small string-assembly helpers for building
// expected query-string fixtures in table-driven tests, the query-string
// analogue of the teacher package's line-joining helpers.
package qstest

import "strings"

// JoinPairs joins "key=value" fragments with delim, so a test's expected
// output can be written as a list of pairs instead of a hand-concatenated
// literal.
//
// Example:
//
//	want := qstest.JoinPairs("&", "a=1", "b=2") // -> "a=1&b=2"
func JoinPairs(delim string, pairs ...string) string {
	var sb strings.Builder

	for i, p := range pairs {
		if i > 0 {
			sb.WriteString(delim)
		}

		sb.WriteString(p)
	}

	return sb.String()
}

// JoinAmp is JoinPairs with the default '&' delimiter.
func JoinAmp(pairs ...string) string {
	return JoinPairs("&", pairs...)
}
