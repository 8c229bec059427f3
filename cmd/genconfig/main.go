// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	config "github.com/BartoszJarocki/templ-i18next/configs"
	"github.com/BartoszJarocki/templ-i18next/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/i18next.yaml.example"
	filePerm       = 0o644

	placeholderCatalogPath  = "locales/en.json"
	placeholderLookupImport = "example.com/webapp/i18n"

	envFileHeader = `# templ-i18next configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# templ-i18next configuration (via configuration file)
#
# Copy this file to i18next.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`

	lookupYAMLComment = `  # -- The import path of the runtime lookup package rewritten components call into`
)

func main() {
	audit.SetDefaultLogger()
	generateEnvFile()
	generateYAMLFile()
}

// generateEnvFile generates the deploy/.env.example file.
func generateEnvFile() {
	cfg := &config.ToolConfig{}
	cfg.SetDefaults()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n", structField.Name)

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch envVarName {
			case "TI18N_CATALOG_PATH":
				// Uncomment required fields with a sensible placeholder.
				fmt.Fprintf(&sb, "%s=\"%s\"\n", envVarName, placeholderCatalogPath)
			case "TI18N_LOOKUP_IMPORT":
				fmt.Fprintf(&sb, "%s=\"%s\"\n", envVarName, placeholderLookupImport)
			default:
				// For other fields, comment them out. If the value is a slice
				// or an empty string, omit the value to prompt user input.
				if value.Kind() == reflect.Slice || (value.Kind() == reflect.String && value.Len() == 0) {
					fmt.Fprintf(&sb, "# %s=\n", envVarName)
				} else {
					fmt.Fprintf(&sb, "# %s=%v\n", envVarName, value.Interface())
				}
			}
		}

		sb.WriteString("\n")
	}

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// generateYAMLFile generates the deploy/i18next.yaml.example file.
func generateYAMLFile() {
	cfg := &config.ToolConfig{}
	cfg.SetDefaults()

	cfg.Catalog.Path = placeholderCatalogPath
	cfg.Lookup.Import = placeholderLookupImport

	var yamlContent strings.Builder
	// Marshal the config to YAML.
	encoderOpts := []yaml.EncodeOption{
		config.GetDurationEncoderOption(),
		yaml.Indent(2),
	}
	if err := yaml.NewEncoder(&yamlContent, encoderOpts...).Encode(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "catalog:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)
			continue
		}

		// Keep the required fields and their special comments uncommented.
		if strings.HasPrefix(trimmed, "path: "+placeholderCatalogPath) {
			sb.WriteString(line + "\n")

			continue
		}

		if strings.HasPrefix(trimmed, "import:") {
			sb.WriteString(lookupYAMLComment + "\n")
			sb.WriteString(line + "\n")

			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	if err := os.WriteFile(yamlOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated i18next.yaml.example")
}
