// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

// Package catalog loads, mutates, and persists the two-level translation
// catalog (unit name -> key -> source text) backed by a UTF-8 JSON file.
//
// The on-disk representation is the wire contract with external tooling such
// as translation-management systems: keys sorted lexicographically, 2-space
// indentation. Optionally the whole mapping is nested under a configured root
// key inside a larger JSON document.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const filePerm = 0o644

// Catalog maps case-folded unit names to their key -> text entries.
type Catalog map[string]map[string]string

// Load reads the catalog at path. If rootKey is non-empty, only the
// sub-mapping under that key is returned.
//
// Any read or parse failure yields an empty catalog, never an error: a
// missing or malformed file simply means extraction starts from scratch.
func Load(path, rootKey string) Catalog {
	c := Catalog{}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the tool's own configuration
	if err != nil {
		log.Debug().
			Err(err).
			Str("path", path).
			Msg("No readable catalog file, starting empty")

		return c
	}

	if rootKey != "" {
		sub := gjson.GetBytes(data, escapePath(rootKey))
		if !sub.Exists() {
			return c
		}

		data = []byte(sub.Raw)
	}

	if err := json.Unmarshal(data, &c); err != nil {
		log.Warn().
			Err(err).
			Str("path", path).
			Msg("Catalog file is not valid JSON, starting empty")

		// Unmarshal may have partially filled the map before failing.
		return Catalog{}
	}

	return c
}

// Save serializes c and fully replaces the file at path. If rootKey is
// non-empty, the catalog is wrapped under that key before writing.
//
// The write is atomic: a crash mid-save leaves the previous file intact.
func Save(path string, c Catalog, rootKey string) error {
	var payload any = c
	if rootKey != "" {
		payload = map[string]Catalog{rootKey: c}
	}

	// encoding/json sorts map keys, which keeps re-runs diff-stable.
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize catalog: %w", err)
	}

	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write catalog to %s: %w", path, err)
	}

	return nil
}

// Upsert sets c[unit][key] = text, creating the unit's mapping if absent.
// A later extraction with the same key overwrites the earlier value,
// last write wins.
func (c Catalog) Upsert(unit, key, text string) {
	entries, ok := c[unit]
	if !ok {
		entries = map[string]string{}
		c[unit] = entries
	}

	entries[key] = text
}

// Stats returns the number of units and the total number of entries.
func (c Catalog) Stats() (units, entries int) {
	for _, m := range c {
		units++
		entries += len(m)
	}

	return units, entries
}

// escapePath makes a literal key usable as a gjson path by escaping the
// characters gjson treats as syntax.
func escapePath(key string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)

	return r.Replace(key)
}
