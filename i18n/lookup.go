// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package i18n

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Func is the lookup function bound inside rewritten components. The key is
// the namespaced form written by the extractor, "<unit>.<key>"; the optional
// maps supply values for {{name}} placeholders in the resolved text.
type Func func(key string, data ...map[string]any) string

// Use returns the lookup function for the language carried by ctx. It is
// what the extractor binds at the top of every rewritten component:
//
//	{{ t := i18n.Use(ctx) }}
func Use(ctx context.Context) Func {
	tag := TagFrom(ctx)

	return func(key string, data ...map[string]any) string {
		return render(lookup(tag, key), mergeData(data))
	}
}

// lookup resolves key for tag, falling back through the bundle's matcher
// chain and finally to the key itself, so missing entries stay visible
// instead of rendering as empty strings.
func lookup(tag language.Tag, key string) string {
	if bundle == nil {
		return key
	}

	msg, err := goi18n.NewLocalizer(bundle, tag.String()).
		Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		// A MessageNotFoundErr still carries the base locale's text when only
		// the requested locale is missing the entry.
		var notFound *goi18n.MessageNotFoundErr
		if !errors.As(err, &notFound) {
			return key
		}
	}

	if msg == "" {
		return key
	}

	return msg
}

var placeholderRe = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// render substitutes {{name}} placeholders in text from data. Placeholders
// with no matching entry are left intact, mirroring the key fallback: a
// translator's typo shows up in the output rather than disappearing.
func render(text string, data map[string]any) string {
	if len(data) == 0 {
		return text
	}

	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := m[2 : len(m)-2]

		v, ok := data[name]
		if !ok {
			return m
		}

		return fmt.Sprint(v)
	})
}

// mergeData flattens the variadic maps left to right, later maps winning.
func mergeData(maps []map[string]any) map[string]any {
	switch len(maps) {
	case 0:
		return nil
	case 1:
		return maps[0]
	}

	out := make(map[string]any)

	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}

	return out
}
