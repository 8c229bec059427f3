// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	parser "github.com/a-h/templ/parser/v2"
)

// ensureImport makes sure the file imports pkgPath, inserting a new import
// block before the first existing import section when needed. Idempotent:
// re-running never duplicates the import. Reports whether it changed the
// file.
func ensureImport(tf *parser.TemplateFile, pkgPath string) bool {
	insertAt := 0
	found := false

	for i, n := range tf.Nodes {
		ge, ok := n.(parser.TemplateFileGoExpression)
		if !ok {
			continue
		}

		paths := importPaths(ge.Expression.Value)
		if slices.Contains(paths, pkgPath) {
			return false
		}

		if len(paths) > 0 && !found {
			insertAt = i
			found = true
		}
	}

	imp := parser.TemplateFileGoExpression{
		Expression: parser.Expression{Value: fmt.Sprintf("import %q", pkgPath)},
	}

	tf.Nodes = slices.Insert(tf.Nodes, insertAt, parser.TemplateFileNode(imp))

	return true
}

// ensureHook makes sure the template binds the lookup function as its first
// statement: `{{ t := <pkg>.Use(ctx) }}`. Idempotent per template.
// Reports whether it changed the template.
//
// templ templates always have block bodies, so unlike expression-bodied
// functions in other component syntaxes there is never a body to rewrite
// first.
func ensureHook(ht *parser.HTMLTemplate, pkgName string) bool {
	for _, child := range ht.Children {
		gc, ok := child.(parser.GoCode)
		if !ok {
			continue
		}

		if callsUse(gc.Expression.Value, pkgName) {
			return false
		}
	}

	hook := parser.GoCode{
		Expression:    parser.Expression{Value: fmt.Sprintf("t := %s.Use(ctx)", pkgName)},
		TrailingSpace: parser.SpaceVertical,
	}

	ht.Children = slices.Insert(ht.Children, 0, parser.Node(hook))

	return true
}

// importPaths parses a top-level Go section of a templ file and returns the
// import paths it declares, if any.
func importPaths(src string) []string {
	f, err := goparser.ParseFile(token.NewFileSet(), "", "package p\n"+src, goparser.ImportsOnly)
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(f.Imports))

	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		out = append(out, p)
	}

	return out
}

// callsUse reports whether the Go code block contains a call to
// <pkgName>.Use.
func callsUse(src, pkgName string) bool {
	f, err := goparser.ParseFile(token.NewFileSet(), "", "package p\nfunc _() {\n"+src+"\n}", 0)
	if err != nil {
		return false
	}

	found := false

	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if pkg, ok := sel.X.(*ast.Ident); ok && pkg.Name == pkgName && sel.Sel.Name == "Use" {
			found = true

			return false
		}

		return true
	})

	return found
}

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// goPkgName guesses the package identifier an import path binds to,
// skipping a trailing major-version element such as /v2.
func goPkgName(importPath string) string {
	base := path.Base(importPath)
	if versionSuffix.MatchString(base) {
		base = path.Base(path.Dir(importPath))
	}

	// Hyphenated repo names usually declare the last word as package name.
	if i := strings.LastIndexByte(base, '-'); i >= 0 {
		base = base[i+1:]
	}

	return base
}
