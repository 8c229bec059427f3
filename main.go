// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

/*
templ-i18next rewrites templ components for internationalization: it extracts
human-readable text into a JSON catalog and replaces it with lookup calls.
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"syscall"

	parser "github.com/a-h/templ/parser/v2"
	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	config "github.com/BartoszJarocki/templ-i18next/configs"
	"github.com/BartoszJarocki/templ-i18next/core/audit"
	"github.com/BartoszJarocki/templ-i18next/core/catalog"
	"github.com/BartoszJarocki/templ-i18next/core/extract"
)

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}
}

// sourceFile is one .templ file moving through the pipeline.
type sourceFile struct {
	path     string
	original []byte
	tree     *parser.TemplateFile
}

// run orchestrates one extraction pass over the configured scan roots.
func run() error {
	audit.SetDefaultLogger()

	if err := config.Global.LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &config.Global

	files, err := discoverFiles(cfg.Scan.Roots, cfg.Scan.Exclude)
	if err != nil {
		return fmt.Errorf("failed to scan for component files: %w", err)
	}

	if len(files) == 0 {
		log.Warn().Strs("roots", cfg.Scan.Roots).Msg("No component files found")

		return nil
	}

	log.Info().Int("files", len(files)).Msg("Scanning component files")

	parsed, err := parseAll(ctx, files)
	if err != nil {
		return err
	}

	cat := catalog.Load(cfg.Catalog.Path, cfg.Catalog.RootKey)

	changed, replacements, err := rewriteAll(ctx, parsed, cat, cfg)
	if err != nil {
		return err
	}

	if !cfg.Write.DryRun {
		if err := catalog.Save(cfg.Catalog.Path, cat, cfg.Catalog.RootKey); err != nil {
			return fmt.Errorf("failed to save catalog: %w", err)
		}
	}

	units, entries := cat.Stats()

	log.Info().
		Int("files_changed", changed).
		Int("replacements", replacements).
		Int("units", units).
		Int("entries", entries).
		Str("catalog", cfg.Catalog.Path).
		Bool("dry_run", cfg.Write.DryRun).
		Msg("Extraction complete")

	return nil
}

// discoverFiles walks the scan roots collecting .templ files, skipping
// excluded directory names. Results are deduplicated and sorted so runs are
// deterministic regardless of root order.
func discoverFiles(roots, exclude []string) ([]string, error) {
	seen := map[string]struct{}{}

	var files []string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != root && slices.Contains(exclude, d.Name()) {
					return filepath.SkipDir
				}

				return nil
			}

			if !strings.HasSuffix(d.Name(), ".templ") {
				return nil
			}

			if _, ok := seen[path]; ok {
				return nil
			}

			seen[path] = struct{}{}
			files = append(files, path)

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)

	return files, nil
}

// parseAll reads and parses every file concurrently. Parsing is read-only
// and CPU-bound, so it parallelizes cleanly; the rewrite phase that follows
// is sequential because it shares the catalog.
func parseAll(ctx context.Context, files []string) ([]*sourceFile, error) {
	parsed := make([]*sourceFile, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range files {
		g.Go(func() error {
			span := audit.Span{Stage: audit.StageParse, File: path}
			span.Begin(ctx)
			defer span.End()

			content, err := os.ReadFile(path) // #nosec G304 -- paths come from the scan roots
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			tree, err := parser.ParseString(string(content))
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}

			parsed[i] = &sourceFile{path: path, original: content, tree: &tree}

			span.End()
			span.Log()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return parsed, nil
}

// rewriteAll runs the extraction passes over every parsed file in order,
// writing back the files whose trees changed. Returns the number of changed
// files and total replacements.
func rewriteAll(ctx context.Context, parsed []*sourceFile, cat catalog.Catalog, cfg *config.ToolConfig) (int, int, error) {
	changed := 0
	replacements := 0

	for _, sf := range parsed {
		if err := ctx.Err(); err != nil {
			return changed, replacements, fmt.Errorf("interrupted: %w", err)
		}

		span := audit.Span{Stage: audit.StageRewrite, File: sf.path}
		span.Begin(ctx)

		ec := extract.NewContext(sf.tree, cat, cfg.Lookup.Import)
		ec.Classifier = extract.Classifier{Separator: cfg.Extract.Separator}
		ec.AttributeAllowList = cfg.Extract.AttributeAllowList
		ec.TemplateDenyList = cfg.Extract.TemplateDenyList

		ec.Transform()

		span.End()

		span.Replacements = ec.Replacements
		span.Units = ec.Units()
		span.Log()

		if !ec.Changed() {
			continue
		}

		replacements += ec.Replacements

		n, err := writeBack(ctx, sf, cfg.Write.DryRun)
		if err != nil {
			return changed, replacements, err
		}

		if n {
			changed++
		}
	}

	return changed, replacements, nil
}

// writeBack renders the rewritten tree and atomically replaces the source
// file when the output differs from what was read. Reports whether the file
// was (or in a dry run, would be) written.
func writeBack(ctx context.Context, sf *sourceFile, dryRun bool) (bool, error) {
	span := audit.Span{Stage: audit.StageWrite, File: sf.path}
	span.Begin(ctx)
	defer func() {
		span.End()
		span.Log()
	}()

	var buf bytes.Buffer

	if err := sf.tree.Write(&buf); err != nil {
		span.Error = err

		return false, fmt.Errorf("failed to render %s: %w", sf.path, err)
	}

	if bytes.Equal(buf.Bytes(), sf.original) {
		return false, nil
	}

	span.Bytes = buf.Len()

	if dryRun {
		log.Info().Str("file", sf.path).Msg("Would rewrite (dry run)")

		return true, nil
	}

	if err := atomic.WriteFile(sf.path, &buf); err != nil {
		span.Error = err

		return false, fmt.Errorf("failed to write %s: %w", sf.path, err)
	}

	log.Info().Str("file", sf.path).Msg("Rewrote component file")

	return true, nil
}
