// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	parser "github.com/a-h/templ/parser/v2"
)

// visitFunc inspects a node and either returns its replacement or declines.
// Replacements are swapped in place and not revisited.
type visitFunc func(n parser.Node, path nodePath) (parser.Node, bool)

// attrVisitFunc inspects one attribute of an element, with the element on
// the tail of path.
type attrVisitFunc func(attr parser.Attribute, path nodePath) (parser.Attribute, bool)

// visitor is a depth-first rewriting walker over a template's children.
// Either callback may be nil. Node shapes a pass does not declare interest
// in are descended through untouched; unknown shapes are ignored entirely.
type visitor struct {
	node visitFunc
	attr attrVisitFunc
}

func (v visitor) walk(nodes []parser.Node, path nodePath) {
	for i, n := range nodes {
		if v.node != nil {
			if rep, ok := v.node(n, path); ok {
				nodes[i] = rep

				continue
			}
		}

		switch x := n.(type) {
		case parser.Element:
			sub := append(path, x)

			if v.attr != nil {
				v.walkAttrs(x.Attributes, sub)
			}

			v.walk(x.Children, sub)
		case parser.IfExpression:
			sub := append(path, x)

			v.walk(x.Then, sub)

			for _, alt := range x.ElseIfs {
				v.walk(alt.Then, sub)
			}

			v.walk(x.Else, sub)
		case parser.ForExpression:
			v.walk(x.Children, append(path, x))
		case parser.SwitchExpression:
			sub := append(path, x)

			for _, c := range x.Cases {
				v.walk(c.Children, sub)
			}
		case parser.TemplElementExpression:
			v.walk(x.Children, append(path, x))
		}
	}
}

func (v visitor) walkAttrs(attrs []parser.Attribute, path nodePath) {
	for i, a := range attrs {
		if rep, ok := v.attr(a, path); ok {
			attrs[i] = rep

			continue
		}

		// Conditional attributes nest further attributes in both branches.
		if cond, ok := a.(parser.ConditionalAttribute); ok {
			v.walkAttrs(cond.Then, path)
			v.walkAttrs(cond.Else, path)
		}
	}
}
