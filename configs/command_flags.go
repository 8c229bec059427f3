// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package config

import "flag"

type commandFlags struct {
	configPath string
	dryRun     bool
}

// parseCommandLineArgs defines and parses flags, returning their values.
func parseCommandLineArgs() commandFlags {
	var flags commandFlags

	if flag.Lookup("config") == nil {
		flag.StringVar(&flags.configPath, "config", "./i18next.yaml", "Path to a templ-i18next configuration file in YAML format.")
	}

	if flag.Lookup("dry-run") == nil {
		flag.BoolVar(&flags.dryRun, "dry-run", false, "Report what would change without writing files or the catalog.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return flags
}
