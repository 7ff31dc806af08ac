// Package epg provides XMLTV schedule ingestion and channel-name matching
// for overlaying programme data onto panel stream names.
package epg

import (
	"regexp"
	"strings"

	unorm "golang.org/x/text/unicode/norm"
)

var (
	bracketed  = regexp.MustCompile(`\[.*?\]`)
	disallowed = regexp.MustCompile(`[^a-z0-9 ]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize turns a display name into the canonical matching key used by the
// schedule index. Stream names from the panel and channel labels in the EPG
// document are produced independently, so both sides must run through the
// exact same pipeline for lookups to line up:
//
//  1. lowercase
//  2. drop bracketed tags like "[HD]" or "[UK]"
//  3. NFD-decompose accented characters into base + combining marks
//  4. drop everything outside [a-z0-9 ] (this discards the combining marks
//     left over from decomposition)
//  5. collapse whitespace runs and trim
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	lower := strings.ToLower(name)
	lower = bracketed.ReplaceAllString(lower, "")
	decomposed := unorm.NFD.String(lower)
	stripped := disallowed.ReplaceAllString(decomposed, "")

	return whitespace.ReplaceAllString(strings.TrimSpace(stripped), " ")
}
