// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"slices"
	"strings"

	parser "github.com/a-h/templ/parser/v2"
)

// textPass rewrites literal text nodes sitting directly in markup. The
// classifier check is the only filter.
func (c *Context) textPass() {
	c.eachTemplate(func(ht *parser.HTMLTemplate) {
		visitor{node: c.visitText}.walk(ht.Children, nodePath{*ht})
	})
}

func (c *Context) visitText(n parser.Node, path nodePath) (parser.Node, bool) {
	text, ok := n.(parser.Text)
	if !ok {
		return nil, false
	}

	unit, ok := findOwningUnit(path)
	if !ok {
		return nil, false
	}

	s := Sanitize(text.Value)
	if !c.Classifier.IsTranslatable(s) {
		return nil, false
	}

	ref, ok := c.record(unit, s, s)
	if !ok {
		return nil, false
	}

	return parser.StringExpression{
		Expression:    parser.Expression{Value: c.lookupCall(ref, nil)},
		TrailingSpace: text.TrailingSpace,
	}, true
}

// attributePass rewrites literal string values of allow-listed attribute
// names. Attributes outside the allow-list are left untouched regardless of
// content, as are attributes whose value is already an expression.
func (c *Context) attributePass() {
	c.eachTemplate(func(ht *parser.HTMLTemplate) {
		visitor{attr: c.visitConstantAttr}.walk(ht.Children, nodePath{*ht})
	})
}

func (c *Context) visitConstantAttr(a parser.Attribute, path nodePath) (parser.Attribute, bool) {
	attr, ok := a.(parser.ConstantAttribute)
	if !ok {
		return nil, false
	}

	if !slices.Contains(c.AttributeAllowList, strings.ToLower(attr.Name)) {
		return nil, false
	}

	unit, ok := findOwningUnit(path)
	if !ok {
		return nil, false
	}

	s := Sanitize(attr.Value)
	if !c.Classifier.IsTranslatable(s) {
		return nil, false
	}

	ref, ok := c.record(unit, s, s)
	if !ok {
		return nil, false
	}

	return parser.ExpressionAttribute{
		Name:       attr.Name,
		Expression: parser.Expression{Value: c.lookupCall(ref, nil)},
	}, true
}

// templatePass rewrites interpolated string expressions, both as markup
// children and as attribute values. Attribute positions honor the deny-list;
// expressions wrapped in an opaque call are never candidates (see
// parseInterpolation).
func (c *Context) templatePass() {
	c.eachTemplate(func(ht *parser.HTMLTemplate) {
		visitor{node: c.visitStringExpression, attr: c.visitExpressionAttr}.walk(ht.Children, nodePath{*ht})
	})
}

func (c *Context) visitStringExpression(n parser.Node, path nodePath) (parser.Node, bool) {
	se, ok := n.(parser.StringExpression)
	if !ok {
		return nil, false
	}

	call, ok := c.rewriteInterpolation(se.Expression.Value, path)
	if !ok {
		return nil, false
	}

	return parser.StringExpression{
		Expression:    parser.Expression{Value: call},
		TrailingSpace: se.TrailingSpace,
	}, true
}

func (c *Context) visitExpressionAttr(a parser.Attribute, path nodePath) (parser.Attribute, bool) {
	attr, ok := a.(parser.ExpressionAttribute)
	if !ok {
		return nil, false
	}

	if slices.Contains(c.TemplateDenyList, strings.ToLower(attr.Name)) {
		return nil, false
	}

	call, ok := c.rewriteInterpolation(attr.Expression.Value, path)
	if !ok {
		return nil, false
	}

	return parser.ExpressionAttribute{
		Name:       attr.Name,
		Expression: parser.Expression{Value: call},
	}, true
}

// rewriteInterpolation runs the shared candidate protocol for a template
// expression: decompose, classify on the placeholder-stripped text so
// variable content never influences the key, record, and build the
// replacement call with one map entry per embedded expression in encounter
// order.
func (c *Context) rewriteInterpolation(src string, path nodePath) (string, bool) {
	in, ok := parseInterpolation(src)
	if !ok {
		return "", false
	}

	unit, ok := findOwningUnit(path)
	if !ok {
		return "", false
	}

	stripped := Sanitize(in.stripped())
	if !c.Classifier.IsTranslatable(stripped) {
		return "", false
	}

	ref, ok := c.record(unit, stripped, Sanitize(in.text()))
	if !ok {
		return "", false
	}

	return c.lookupCall(ref, in.bindings), true
}
