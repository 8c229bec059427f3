// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package config

import (
	"slices"

	"github.com/BartoszJarocki/templ-i18next/core/extract"
)

// SetDefaults populates the configuration with default values.
//
// Catalog.Path and Lookup.Import have no defaults on purpose: both are
// project-specific and validation fails when they are missing.
func (cfg *ToolConfig) SetDefaults() {
	cfg.Catalog.RootKey = ""

	cfg.Scan.Roots = []string{"."}
	cfg.Scan.Exclude = []string{".git", "vendor", "node_modules"}

	cfg.Extract.AttributeAllowList = slices.Clone(extract.DefaultAttributeAllowList)
	cfg.Extract.TemplateDenyList = slices.Clone(extract.DefaultTemplateDenyList)
	cfg.Extract.Separator = "|"

	cfg.Write.DryRun = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
