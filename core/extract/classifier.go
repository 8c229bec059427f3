// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// numerals matches fragments consisting entirely of digits.
var numerals = regexp.MustCompile(`^[0-9]+$`)

// currencySymbols are rejected only as the entire trimmed fragment.
var currencySymbols = map[string]struct{}{
	"$": {}, "€": {}, "£": {}, "¥": {}, "₹": {}, "₩": {}, "₽": {}, "¢": {}, "฿": {},
}

// punctuationTokens are rejected only as the entire trimmed fragment.
// Multi-character sentences containing any of these still pass.
var punctuationTokens = map[string]struct{}{
	".": {}, ",": {}, ":": {}, ";": {}, "!": {}, "?": {},
	"'": {}, "\"": {}, "`": {},
	"(": {}, ")": {}, "[": {}, "]": {}, "{": {}, "}": {}, "<": {}, ">": {},
	"/": {}, "\\": {}, "|": {},
	"-": {}, "–": {}, "—": {}, "_": {},
	"+": {}, "=": {}, "*": {}, "&": {}, "^": {}, "%": {}, "#": {}, "@": {}, "~": {},
	"…": {}, "•": {}, "·": {},
}

// Sanitize collapses all whitespace runs, including newlines, to a single
// space and trims the ends. This is the canonical form stored in the catalog
// and fed to key derivation.
func Sanitize(text string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))
}

// Classifier decides whether a fragment of source text is worth extracting.
//
// The zero value is ready to use. Separator optionally names one more exact
// token to reject, for markup that uses a decorative divider such as "|".
type Classifier struct {
	Separator string
}

// IsTranslatable reports whether text should be extracted. The check is an
// exact-match denylist on the trimmed whole fragment, never a substring
// filter: "42" and "$" are rejected, "Price: $5" passes.
func (c Classifier) IsTranslatable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	if numerals.MatchString(trimmed) {
		return false
	}

	if _, ok := currencySymbols[trimmed]; ok {
		return false
	}

	if _, ok := punctuationTokens[trimmed]; ok {
		return false
	}

	if c.Separator != "" && trimmed == c.Separator {
		return false
	}

	return true
}
