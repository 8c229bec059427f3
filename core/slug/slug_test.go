// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package slug

import (
	"regexp"
	"strings"
	"testing"
)

var slugAlphabet = regexp.MustCompile(`^[a-z0-9-]*$`)

func TestDerive(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"Simple", "Hello World", "hello-world"},
		{"Punctuation runs collapse", "Hello,  World!!", "hello-world"},
		{"Diacritics", "Café Olé", "cafe-ole"},
		{"Apostrophes dropped", "Don't stop", "dont-stop"},
		{"Typographic apostrophe", "User’s profile", "users-profile"},
		{"Digits kept", "Top 10 results", "top-10-results"},
		{"Placeholder residue", "Hello , role ", "hello-role"},
		{"Leading and trailing noise", "  ...Save?  ", "save"},
		{"Empty", "", ""},
		{"Only punctuation", "!?!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := Derive(tc.in); got != tc.want {
				t.Errorf("Derive(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	t.Parallel()

	inputs := []string{"Hello World", "Café Olé", "Price: $5", strings.Repeat("word ", 30)}

	for _, in := range inputs {
		if Derive(in) != Derive(in) {
			t.Errorf("Derive(%q) is not deterministic", in)
		}
	}
}

func TestDerive_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("translate all the strings ", 10)

	got := Derive(long)
	if len(got) > MaxLength {
		t.Errorf("Derive() length = %d, want <= %d", len(got), MaxLength)
	}

	if !slugAlphabet.MatchString(got) {
		t.Errorf("Derive() = %q, contains characters outside [a-z0-9-]", got)
	}

	if strings.HasSuffix(got, "-") {
		t.Errorf("Derive() = %q, truncation left a trailing separator", got)
	}
}

func TestDeriveMax_TruncationTrimsSeparator(t *testing.T) {
	t.Parallel()

	// "hello-world" cut at 6 bytes would end in "-"; the trailing separator
	// must be trimmed.
	if got := DeriveMax("hello world", 6); got != "hello" {
		t.Errorf("DeriveMax(%q, 6) = %q, want %q", "hello world", got, "hello")
	}
}
