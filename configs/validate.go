// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errNoCatalogPath    = errors.New("catalog.path is required. Please point it at the JSON catalog file")
	errNoLookupImport   = errors.New("lookup.import is required. Please set the import path of the runtime lookup package")
	errInvalidImport    = errors.New("lookup.import is not a valid Go import path")
	errNoScanRoots      = errors.New("scan.roots cannot be empty")
	errScanRootMissing  = errors.New("scan root does not exist")
	errInvalidLogLevel  = errors.New("invalid Log.Level value")
	errInvalidLogFormat = errors.New("invalid Log.Format value")
	errInvalidSeparator = errors.New("extract.separator must be a single token without whitespace")
)

// validateAndSet validates the tool configuration and normalizes some fields.
func (cfg *ToolConfig) validateAndSet() error {
	if cfg.Catalog.Path == "" {
		return errNoCatalogPath
	}

	cfg.Catalog.Path = filepath.Clean(cfg.Catalog.Path)

	if cfg.Lookup.Import == "" {
		return errNoLookupImport
	}

	if strings.ContainsAny(cfg.Lookup.Import, " \t\"`") {
		return fmt.Errorf("%w: %q", errInvalidImport, cfg.Lookup.Import)
	}

	if len(cfg.Scan.Roots) == 0 {
		return errNoScanRoots
	}

	for i, root := range cfg.Scan.Roots {
		cfg.Scan.Roots[i] = filepath.Clean(root)

		if _, err := os.Stat(cfg.Scan.Roots[i]); err != nil {
			return fmt.Errorf("%w: %s", errScanRootMissing, root)
		}
	}

	// Attribute names are matched case-insensitively against lowercase lists.
	for i, name := range cfg.Extract.AttributeAllowList {
		cfg.Extract.AttributeAllowList[i] = strings.ToLower(name)
	}

	for i, name := range cfg.Extract.TemplateDenyList {
		cfg.Extract.TemplateDenyList[i] = strings.ToLower(name)
	}

	if cfg.Extract.Separator != strings.TrimSpace(cfg.Extract.Separator) ||
		strings.ContainsAny(cfg.Extract.Separator, " \t\n") {
		return errInvalidSeparator
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return errInvalidLogLevel
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return errInvalidLogFormat
	}

	if cfg.Write.DryRun {
		log.Info().Msg("Dry run enabled: no files will be written")
	}

	return nil
}
