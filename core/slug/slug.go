// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

// Package slug derives stable, URL-safe translation keys from UI text.
//
// Derivation is pure: the same input always yields the same key, which keeps
// catalog re-runs diff-stable. Two different texts may legally collapse to
// the same key (truncation, punctuation near-duplicates); callers own that
// collision policy.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the default key length cap, in bytes of the slug alphabet.
const MaxLength = 40

// deaccenter strips diacritics by NFD-decomposing, removing combining marks,
// and recomposing, so "Café" and "Cafe" derive the same key.
var deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// droppedMarks vanish entirely instead of becoming separators,
// so "Don't stop" derives "dont-stop" rather than "don-t-stop".
var droppedMarks = map[rune]struct{}{
	'\'': {},
	'’':  {},
	'`':  {},
}

// Derive converts text into a lowercase slug of at most MaxLength bytes,
// using only the alphabet [a-z0-9-].
func Derive(text string) string {
	return DeriveMax(text, MaxLength)
}

// DeriveMax is Derive with an explicit length cap.
func DeriveMax(text string, maxLen int) string {
	if folded, _, err := transform.String(deaccenter, text); err == nil {
		text = folded
	}

	text = strings.ToLower(text)

	var b strings.Builder

	pendingSep := false

	for _, r := range text {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}

			pendingSep = false

			b.WriteRune(r)
		default:
			if _, drop := droppedMarks[r]; drop {
				continue
			}

			// Everything else, whitespace and punctuation alike,
			// collapses into a single separator.
			pendingSep = true
		}
	}

	s := b.String()
	if maxLen > 0 && len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}

	return s
}
