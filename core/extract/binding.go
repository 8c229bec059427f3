// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"bytes"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// binding pairs an interpolated sub-expression with its derived parameter
// name. Shorthand marks bindings whose name is exactly the textual form of a
// bare-identifier expression.
type binding struct {
	name      string
	expr      string
	shorthand bool
}

// interpolation is a decomposed string template: alternating literal chunks
// and embedded expressions. len(chunks) == len(bindings)+1.
type interpolation struct {
	chunks   []string
	bindings []binding
}

// text renders the translation template: literal chunks joined by {{name}}
// placeholders in expression encounter order.
func (in *interpolation) text() string {
	var b strings.Builder

	b.WriteString(in.chunks[0])

	for i, bd := range in.bindings {
		b.WriteString("{{")
		b.WriteString(bd.name)
		b.WriteString("}}")
		b.WriteString(in.chunks[i+1])
	}

	return b.String()
}

// stripped renders the literal chunks with placeholder spans removed, the
// form translation keys are derived from so variable content never
// influences the key.
func (in *interpolation) stripped() string {
	return strings.Join(in.chunks, "")
}

// parseInterpolation decomposes a Go string-building expression into literal
// chunks and embedded expressions. Recognized shapes:
//
//   - a plain string literal: `"Hello"`
//   - a concatenation chain: `"Hello " + user.Name + ", role " + user.Role`
//   - a Sprintf call: `fmt.Sprintf("Hello %s, role %s", user.Name, user.Role)`
//
// Any other top-level shape is not a candidate. In particular an expression
// wrapped in some other call, such as templ.URL(fmt.Sprintf(...)), is never
// rewritten: the wrapping call's semantics are opaque to this tool.
func parseInterpolation(src string) (*interpolation, bool) {
	expr, err := goparser.ParseExpr(src)
	if err != nil {
		return nil, false
	}

	switch x := unparen(expr).(type) {
	case *ast.BasicLit:
		lit, ok := stringLit(x)
		if !ok {
			return nil, false
		}

		return &interpolation{chunks: []string{lit}}, true
	case *ast.BinaryExpr:
		return fromConcat(x)
	case *ast.CallExpr:
		return fromSprintf(x)
	}

	return nil, false
}

// fromConcat decomposes a `+` chain mixing string literals and arbitrary
// expressions. Chains with no literal chunk carry no translatable text and
// are rejected.
func fromConcat(root *ast.BinaryExpr) (*interpolation, bool) {
	var parts []ast.Expr
	if !flattenAdd(root, &parts) {
		return nil, false
	}

	in := &interpolation{chunks: []string{""}}

	sawLiteral := false

	var exprs []ast.Expr

	for _, p := range parts {
		if lit, ok := stringLit(p); ok {
			in.chunks[len(in.chunks)-1] += lit
			sawLiteral = true

			continue
		}

		exprs = append(exprs, p)
		in.chunks = append(in.chunks, "")
	}

	if !sawLiteral || len(exprs) == 0 {
		return nil, false
	}

	in.bindings = nameBindings(exprs)

	return in, true
}

// fromSprintf decomposes fmt.Sprintf("...", args...) by splitting the format
// string at its verbs. Calls whose verb count does not match the argument
// count, or that use verbs this tool cannot map to a single argument, are
// skipped.
func fromSprintf(call *ast.CallExpr) (*interpolation, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return nil, false
	}

	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != "fmt" || sel.Sel.Name != "Sprintf" || len(call.Args) < 2 {
		return nil, false
	}

	format, ok := stringLit(call.Args[0])
	if !ok {
		return nil, false
	}

	chunks, verbs, ok := splitFormat(format)
	if !ok || verbs != len(call.Args)-1 {
		return nil, false
	}

	return &interpolation{
		chunks:   chunks,
		bindings: nameBindings(call.Args[1:]),
	}, true
}

// nameBindings derives a parameter name for each expression: bare
// identifiers reuse their own name (shorthand), selector chains use the last
// accessed member with its first rune lowercased, anything else falls back
// to a positional name scoped to this single template. A derived name that
// collides with an earlier binding also falls back to its positional name,
// since the replacement map literal cannot repeat keys.
func nameBindings(exprs []ast.Expr) []binding {
	used := make(map[string]struct{}, len(exprs))
	out := make([]binding, 0, len(exprs))

	for i, e := range exprs {
		e = unparen(e)

		name := ""
		shorthand := false

		switch x := e.(type) {
		case *ast.Ident:
			name = x.Name
			shorthand = true
		case *ast.SelectorExpr:
			name = lowerFirst(x.Sel.Name)
		}

		if _, taken := used[name]; name == "" || taken {
			shorthand = false

			// Positional fallback, 1-indexed by expression order. Skip past
			// the rare case of a positional name itself being taken.
			for n := i + 1; ; n++ {
				candidate := fmt.Sprintf("var%d", n)
				if _, taken := used[candidate]; !taken {
					name = candidate

					break
				}
			}
		}

		used[name] = struct{}{}

		out = append(out, binding{name: name, expr: renderExpr(e), shorthand: shorthand})
	}

	return out
}

// splitFormat splits a Sprintf format string into the literal chunks around
// its verbs. %% stays a literal percent sign; star widths and other exotic
// verbs make the whole format unusable.
func splitFormat(format string) (chunks []string, verbs int, ok bool) {
	chunks = []string{""}

	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			chunks[len(chunks)-1] += string(c)
			i++

			continue
		}

		i++
		if i < len(format) && format[i] == '%' {
			chunks[len(chunks)-1] += "%"
			i++

			continue
		}

		// Flags, width, precision.
		for i < len(format) && strings.ContainsRune("+-# 0123456789.", rune(format[i])) {
			i++
		}

		if i >= len(format) {
			return nil, 0, false
		}

		verb := format[i]
		if !strings.ContainsRune("vsdqftbcoxXUeEgG", rune(verb)) {
			return nil, 0, false
		}

		i++
		verbs++

		chunks = append(chunks, "")
	}

	return chunks, verbs, true
}

// flattenAdd collects the operands of a left-nested `+` chain in source
// order.
func flattenAdd(e ast.Expr, out *[]ast.Expr) bool {
	if b, ok := unparen(e).(*ast.BinaryExpr); ok && b.Op == token.ADD {
		return flattenAdd(b.X, out) && flattenAdd(b.Y, out)
	}

	*out = append(*out, unparen(e))

	return true
}

func unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}

		e = p.X
	}
}

func stringLit(e ast.Expr) (string, bool) {
	lit, ok := unparen(e).(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	s, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}

	return s, true
}

// renderExpr prints e back to Go source.
func renderExpr(e ast.Expr) string {
	var buf bytes.Buffer

	_ = printer.Fprint(&buf, token.NewFileSet(), e)

	return buf.String()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}
