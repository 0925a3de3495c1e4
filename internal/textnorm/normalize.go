// Package textnorm cleans raw transcripts before classification.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9\s]`)
	fillerWord = regexp.MustCompile(`\b(uh|um|hmm|haan|haina|ok|okay|please|thank)\b`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips punctuation, removes filler words and
// collapses whitespace. It never fails, and applying it twice yields the
// same output as applying it once.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonAlnum.ReplaceAllString(s, " ")
	s = fillerWord.ReplaceAllString(s, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
