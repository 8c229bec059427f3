// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadConfig focuses on verifying main functionality (e.g. required
// fields, env precedence), and *shouldn't* need exhaustive scenarios.
func TestLoadConfig(t *testing.T) {
	scanRoot := t.TempDir()
	catalogPath := filepath.Join(t.TempDir(), "catalog.json")

	tests := []struct {
		name    string            // Description of the test case
		env     map[string]string // Name of the environment variable and its value
		wantErr bool              // Whether an error is expected
	}{
		{
			name: "Valid configuration",
			env: map[string]string{
				"TI18N_CATALOG_PATH":  catalogPath,
				"TI18N_LOOKUP_IMPORT": "example.com/webapp/i18n",
				"TI18N_SCAN_ROOTS":    scanRoot,
			},
			wantErr: false,
		},
		{
			name: "Missing required TI18N_CATALOG_PATH",
			env: map[string]string{
				"TI18N_LOOKUP_IMPORT": "example.com/webapp/i18n",
				"TI18N_SCAN_ROOTS":    scanRoot,
			},
			wantErr: true,
		},
		{
			name: "Missing required TI18N_LOOKUP_IMPORT",
			env: map[string]string{
				"TI18N_CATALOG_PATH": catalogPath,
				"TI18N_SCAN_ROOTS":   scanRoot,
			},
			wantErr: true,
		},
		{
			name: "Invalid TI18N_LOOKUP_IMPORT",
			env: map[string]string{
				"TI18N_CATALOG_PATH":  catalogPath,
				"TI18N_LOOKUP_IMPORT": "not an import path",
				"TI18N_SCAN_ROOTS":    scanRoot,
			},
			wantErr: true,
		},
		{
			name: "Nonexistent scan root",
			env: map[string]string{
				"TI18N_CATALOG_PATH":  catalogPath,
				"TI18N_LOOKUP_IMPORT": "example.com/webapp/i18n",
				"TI18N_SCAN_ROOTS":    filepath.Join(scanRoot, "no-such-dir"),
			},
			wantErr: true,
		},
		{
			name: "Invalid TI18N_LOG_LEVEL",
			env: map[string]string{
				"TI18N_CATALOG_PATH":  catalogPath,
				"TI18N_LOOKUP_IMPORT": "example.com/webapp/i18n",
				"TI18N_SCAN_ROOTS":    scanRoot,
				"TI18N_LOG_LEVEL":     "loud",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			// Create a new ToolConfig instance
			config := &ToolConfig{}

			// Call LoadConfig
			err := config.LoadConfig()

			// Check for errors
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if !tt.wantErr {
				// Test whether config fields were set correctly
				if config.Catalog.Path != tt.env["TI18N_CATALOG_PATH"] {
					t.Errorf("LoadConfig() Catalog.Path = %v, want %v", config.Catalog.Path, tt.env["TI18N_CATALOG_PATH"])
				}

				if config.Lookup.Import != tt.env["TI18N_LOOKUP_IMPORT"] {
					t.Errorf("LoadConfig() Lookup.Import = %v, want %v", config.Lookup.Import, tt.env["TI18N_LOOKUP_IMPORT"])
				}

				if len(config.Scan.Roots) != 1 || config.Scan.Roots[0] != scanRoot {
					t.Errorf("LoadConfig() Scan.Roots = %v, want [%v]", config.Scan.Roots, scanRoot)
				}

				if len(config.Extract.AttributeAllowList) == 0 {
					t.Error("LoadConfig() AttributeAllowList is empty")
				}

				if config.Extract.Separator == "" {
					t.Error("LoadConfig() Separator is empty")
				}
			}
		})
	}
}

func TestEnvListParsing(t *testing.T) {
	t.Setenv("TI18N_SCAN_EXCLUDE", " .git , dist ,node_modules ")

	config := &ToolConfig{}
	config.SetDefaults()

	if err := readEnv(config); err != nil {
		t.Fatalf("readEnv() error = %v", err)
	}

	want := []string{".git", "dist", "node_modules"}
	if len(config.Scan.Exclude) != len(want) {
		t.Fatalf("Scan.Exclude = %v, want %v", config.Scan.Exclude, want)
	}

	for i := range want {
		if config.Scan.Exclude[i] != want[i] {
			t.Errorf("Scan.Exclude[%d] = %q, want %q", i, config.Scan.Exclude[i], want[i])
		}
	}
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TI18N_LOG_LEVEL=debug\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("TI18N_LOG_LEVEL", "warn")
	t.Chdir(dir)

	if err := useDotEnv(); err != nil {
		t.Fatalf("useDotEnv() error = %v", err)
	}

	if got := os.Getenv("TI18N_LOG_LEVEL"); got != "warn" {
		t.Errorf("TI18N_LOG_LEVEL = %q, want %q", got, "warn")
	}
}
