// Package suggest produces best-effort "did you mean" strings for bytes the
// scanner's dispatcher could not classify. It never influences the token
// stream — it is pure string enrichment for a human reading an error.
//
// Adapted from runtime/planner's findClosestMatch, which used
// lithammer/fuzzysearch to suggest decorator names; here the same ranking
// is applied to operator spellings and previously seen identifiers.
package suggest

import "github.com/lithammer/fuzzysearch/fuzzy"

// Operators is the closed vocabulary of well-formed operator spellings (one
// to four bytes, plus "." and "...") used as suggestion candidates. The
// dispatcher's operator rule also accepts some runs that are not listed
// here, such as "~~" or "====". Kept here rather than in the scanner
// package so it can be reused by tooling without importing the scanner's
// internals.
var Operators = []string{
	"=", "==", "===", "=>",
	"!", "!=", "!==",
	"&", "&&", "&=", "&&=",
	"|", "||", "|=", "||=",
	"^", "^=",
	"~", "~=",
	"%", "%=",
	"/", "/=",
	"*", "**", "*=", "**=",
	"<", "<<", "<<=", "<=",
	">", ">>", ">=", ">>=", ">>>", ">>>=",
	"+", "++", "+=",
	"-", "--", "-=",
	".", "...",
}

// Find returns the closest match for target among candidates, or "" if
// candidates is empty or nothing is close enough to be worth suggesting.
func Find(target string, candidates []string) string {
	if len(candidates) == 0 || target == "" {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].Target
}

// ForUnrecognizedByte suggests a replacement for a single offending byte,
// considering both the closed operator vocabulary and any keyword-shaped
// identifiers the caller has already observed in this buffer (seen).
func ForUnrecognizedByte(offending byte, seen []string) string {
	target := string(offending)
	candidates := make([]string, 0, len(Operators)+len(seen))
	candidates = append(candidates, Operators...)
	candidates = append(candidates, seen...)
	return Find(target, candidates)
}
