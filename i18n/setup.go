// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

// Package i18n is the runtime half of templ-i18next: the lookup package that
// rewritten components import. The extractor replaces source text with calls
// like
//
//	{{ t := i18n.Use(ctx) }}
//	{ t("welcome.hello-world") }
//	{ t("welcome.hello-role", map[string]any{"name": user.Name, "role": user.Role}) }
//
// and this package resolves those keys against per-locale JSON catalogs,
// rendering {{name}} placeholders from the binding map.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/BartoszJarocki/templ-i18next/core/catalog"
)

// Logger is the package sub-logger, installed by Setup.
var Logger zerolog.Logger

var (
	// baseTag is the source locale, the default fallback for matching.
	baseTag = language.English

	bundle *goi18n.Bundle

	// matcher is a private [language.Matcher] derived from the loaded locales.
	matcher language.Matcher

	// supportedTags holds the tags for which a catalog was loaded, base first.
	supportedTags []language.Tag
)

// Setup initialises the runtime by loading one JSON catalog per locale from
// dir and constructing a language matcher. The expected layout is:
//
//	<dir>/<locale>.json
//
// The <locale> filename part may use hyphens or underscores, for example
// "pt-BR.json" or "pt_BR.json", and is normalised to a canonical BCP 47 tag.
// Catalogs use the extractor's wire format (unit -> key -> text, optionally
// nested under rootKey); the extraction catalog itself is the base locale's
// file. Calling Setup again replaces the previously loaded state.
func Setup(baseLocale, dir, rootKey string) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	base, err := language.Parse(baseLocale)
	if err != nil {
		return fmt.Errorf("invalid base locale %q: %w", baseLocale, err)
	}

	baseTag = base

	b := goi18n.NewBundle(base)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var tagsList []language.Tag

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		localeName := strings.TrimSuffix(entry.Name(), ".json")

		// Accept both underscore and hyphen.
		t, err := language.Parse(strings.ReplaceAll(localeName, "_", "-"))
		if err != nil {
			Logger.Warn().Err(err).Str("file", entry.Name()).Msg("Skipping invalid locale file")

			continue
		}

		msgs := messagesFrom(catalog.Load(filepath.Join(dir, entry.Name()), rootKey))
		if err := b.AddMessages(t, msgs...); err != nil {
			Logger.Warn().Err(err).Str("locale", t.String()).Msg("Skipping unloadable catalog")

			continue
		}

		tagsList = append(tagsList, t)

		Logger.Info().
			Str("locale", t.String()).
			Int("messages", len(msgs)).
			Msg("Loaded locale")
	}

	// Base tag first so it is the default fallback for matching; the rest
	// sorted by canonical string.
	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	all := make([]language.Tag, 0, len(tagsList)+1)
	all = append(all, baseTag)

	for _, t := range tagsList {
		if t == baseTag {
			continue
		}

		all = append(all, t)
	}

	bundle = b
	matcher = language.NewMatcher(all)
	supportedTags = all

	return nil
}

// Languages returns the tags for which a catalog was loaded, base first.
func Languages() []language.Tag {
	return supportedTags
}

// messagesFrom flattens a two-level catalog into go-i18n messages keyed
// "<unit>.<key>", the form the extractor writes into rewritten source.
//
// Catalog texts carry {{name}} placeholders, which this package renders
// itself; the custom delimiters keep go-i18n's text/template engine from
// treating them as template actions.
func messagesFrom(cat catalog.Catalog) []*goi18n.Message {
	out := make([]*goi18n.Message, 0, len(cat))

	for unit, entries := range cat {
		for key, text := range entries {
			out = append(out, &goi18n.Message{
				ID:         unit + "." + key,
				Other:      text,
				LeftDelim:  "[[",
				RightDelim: "]]",
			})
		}
	}

	return out
}
