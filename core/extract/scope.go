// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	parser "github.com/a-h/templ/parser/v2"
)

// UnknownFunctionName is the sentinel unit name for template declarations
// whose name cannot be resolved to an identifier.
const UnknownFunctionName = "UnknownFunction"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// nodePath records the ancestors of the node under visit, outermost first.
// When the candidate sits inside a template unit, the first element is that
// parser.HTMLTemplate.
type nodePath []any

// findOwningUnit walks the ancestor path outward from the candidate until it
// finds the enclosing template declaration, whose name namespaces the
// generated keys. It reports false when no enclosing unit exists at all;
// such candidates are dropped rather than renamed.
func findOwningUnit(path nodePath) (string, bool) {
	for i := len(path) - 1; i >= 0; i-- {
		if ht, ok := path[i].(parser.HTMLTemplate); ok {
			return unitName(ht), true
		}
	}

	return "", false
}

// unitName extracts the declared name of a template unit, for example
// "Welcome" from `templ Welcome(name string)`. A declaration that does not
// resolve to an identifier yields the sentinel name instead of being dropped.
func unitName(ht parser.HTMLTemplate) string {
	decl := strings.TrimSpace(ht.Expression.Value)
	if i := strings.IndexByte(decl, '('); i >= 0 {
		decl = decl[:i]
	}

	decl = strings.TrimSpace(decl)
	if !identRe.MatchString(decl) {
		return UnknownFunctionName
	}

	return decl
}

// foldUnit case-folds a unit name for catalog use: first rune lowercased.
func foldUnit(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToLower(r)) + name[size:]
}
