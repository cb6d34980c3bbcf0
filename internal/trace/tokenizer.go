// Package trace extracts candidate identifier tokens from raw stack
// traces. Tokens are the hypothesized class and bean names used for
// relevance scoring.
package trace

import "strings"

// suffixes are stripped (at most one, checked in this order) from the
// end of each identifier run.
var suffixes = []string{"Exception", "Bean", "Service", "Controller"}

// minTokenLen filters out short noise tokens like "At" or "Is".
// Tokens of this length or shorter are discarded.
const minTokenLen = 3

// Tokenize extracts candidate identifiers from a raw stack trace.
//
// Identifiers are maximal runs of alphanumeric/underscore characters.
// A single trailing suffix (Exception, Bean, Service, Controller) is
// stripped before the length filter is applied, so "UserServiceException"
// yields "UserService". Results keep first-occurrence order with
// duplicates removed; empty or whitespace-only input yields an empty
// slice.
func Tokenize(raw string) []string {
	tokens := make([]string, 0)
	seen := make(map[string]struct{})

	for _, run := range identifierRuns(raw) {
		token := stripSuffix(run)
		if len(token) <= minTokenLen {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	return tokens
}

// identifierRuns splits raw text into maximal [A-Za-z0-9_] runs.
func identifierRuns(raw string) []string {
	var runs []string
	var b strings.Builder

	for _, r := range raw {
		if isIdentChar(r) {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			runs = append(runs, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		runs = append(runs, b.String())
	}

	return runs
}

func isIdentChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// stripSuffix removes at most one known suffix from the end of a run.
// A run that is exactly a suffix strips to the empty string, which the
// length filter then discards.
func stripSuffix(run string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(run, suffix) {
			return strings.TrimSuffix(run, suffix)
		}
	}
	return run
}
