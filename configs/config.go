// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	_ "github.com/BartoszJarocki/templ-i18next/core/audit" // setup better logging format
)

// Global exposes the tool configuration.
var Global ToolConfig

// ToolConfig holds the extractor configuration.
type ToolConfig struct {
	Build buildInfo `yaml:"-"`

	Catalog struct {
		// Path is the JSON catalog file extracted text is written to. It is
		// also read at startup so entries accumulate across runs.
		Path    string `env:"TI18N_CATALOG_PATH,overwrite" yaml:"path"`
		RootKey string `env:"TI18N_CATALOG_ROOT_KEY,overwrite" yaml:"rootKey"`
	} `yaml:"catalog"`

	Lookup struct {
		// Import is the import path of the runtime lookup package that
		// rewritten components call into.
		Import string `env:"TI18N_LOOKUP_IMPORT,overwrite" yaml:"import"`
	} `yaml:"lookup"`

	Scan struct {
		Roots   []string `env:"TI18N_SCAN_ROOTS,overwrite" yaml:"roots"`
		Exclude []string `env:"TI18N_SCAN_EXCLUDE,overwrite" yaml:"exclude"`
	} `yaml:"scan"`

	Extract struct {
		AttributeAllowList []string `env:"TI18N_ATTRIBUTE_ALLOW_LIST,overwrite" yaml:"attributeAllowList"`
		TemplateDenyList   []string `env:"TI18N_TEMPLATE_DENY_LIST,overwrite" yaml:"templateDenyList"`
		Separator          string   `env:"TI18N_SEPARATOR" yaml:"separator"`
	} `yaml:"extract"`

	Write struct {
		// DryRun reports what would change without touching source files or
		// the catalog.
		DryRun bool `env:"TI18N_DRY_RUN" yaml:"dryRun"`
	} `yaml:"write"`

	Log struct {
		Level   string   `env:"TI18N_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"TI18N_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TI18N_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ToolConfig) LoadConfig() error {
	flags := parseCommandLineArgs()

	// Check which flags were explicitly set by the user.
	configFlagUserSet := false
	dryRunFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			configFlagUserSet = true
		case "dry-run":
			dryRunFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (TI18N_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		// Command-line flag has the highest precedence.
		configFilePath = flags.configPath
	} else if envVar := os.Getenv("TI18N_CONFIGFILE"); envVar != "" {
		// Environment variable is next.
		configFilePath = envVar
	} else {
		// If neither flag nor env var was provided, use the default value
		// from the flag ("./i18next.yaml").
		configFilePath = flags.configPath
		// Then, perform a fallback check for "./i18next.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./i18next.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if dryRunFlagUserSet {
		cfg.Write.DryRun = flags.dryRun
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
