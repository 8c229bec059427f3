// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

// Package extract is the text-extraction and key-generation engine: it walks
// a parsed templ file, finds translatable content in markup text, attribute
// values, and interpolated string expressions, replaces each occurrence with
// a lookup call keyed by a derived identifier, and records the extracted
// text in the shared catalog.
package extract

import (
	"fmt"
	"sort"
	"strings"

	parser "github.com/a-h/templ/parser/v2"

	"github.com/BartoszJarocki/templ-i18next/core/catalog"
	"github.com/BartoszJarocki/templ-i18next/core/slug"
)

// DefaultAttributeAllowList names the attributes whose literal string values
// are user-facing and therefore translatable.
var DefaultAttributeAllowList = []string{
	"alt", "title", "label", "placeholder", "description", "aria-label", "summary",
}

// DefaultTemplateDenyList names the attributes whose expression values are
// never rewritten even when they look like interpolated text: CSS classes,
// URLs, element identity.
var DefaultTemplateDenyList = []string{
	"class", "id", "style", "href", "src", "for", "key", "name",
}

// Context carries the shared mutable state of one file's transformation:
// the tree, the catalog accumulating entries across files, and the lookup
// package the rewritten code calls into. It is passed explicitly into each
// pass; there is exactly one writer, so no locking.
type Context struct {
	File         *parser.TemplateFile
	Catalog      catalog.Catalog
	LookupImport string

	Classifier         Classifier
	AttributeAllowList []string
	TemplateDenyList   []string

	// Replacements counts nodes rewritten in this file.
	Replacements int

	lookupPkg string
	cur       int
	touched   map[int]struct{}
	units     map[string]struct{}
	mutated   bool
}

// NewContext builds a transformation context for one parsed file. The
// catalog is shared across files within a run; lookupImport is the import
// path of the runtime lookup package.
func NewContext(file *parser.TemplateFile, cat catalog.Catalog, lookupImport string) *Context {
	return &Context{
		File:               file,
		Catalog:            cat,
		LookupImport:       lookupImport,
		AttributeAllowList: DefaultAttributeAllowList,
		TemplateDenyList:   DefaultTemplateDenyList,
		lookupPkg:          goPkgName(lookupImport),
		touched:            map[int]struct{}{},
		units:              map[string]struct{}{},
	}
}

// Transform runs the three extraction passes over the whole file, strictly
// in order (text, then attributes, then templates: each pass mutates the
// tree and later passes must see the latest state), then injects the import
// and per-unit hooks for everything that was touched.
func (c *Context) Transform() {
	c.textPass()
	c.attributePass()
	c.templatePass()
	c.inject()
}

// Changed reports whether the file's tree differs from what was parsed.
func (c *Context) Changed() bool {
	return c.Replacements > 0 || c.mutated
}

// Units returns the case-folded names of the units this file contributed
// entries for, sorted.
func (c *Context) Units() []string {
	out := make([]string, 0, len(c.units))
	for u := range c.units {
		out = append(out, u)
	}

	sort.Strings(out)

	return out
}

// eachTemplate applies fn to every template unit in the file, writing the
// possibly modified unit back into the tree.
func (c *Context) eachTemplate(fn func(ht *parser.HTMLTemplate)) {
	for i := range c.File.Nodes {
		ht, ok := c.File.Nodes[i].(parser.HTMLTemplate)
		if !ok {
			continue
		}

		c.cur = i

		fn(&ht)

		c.File.Nodes[i] = ht
	}
}

// record runs the tail of the per-candidate protocol: derive the key from
// keySource, store text under the case-folded unit name, and mark the unit
// for hook injection. Returns the namespaced key reference for the lookup
// call. Candidates whose derived key is empty (no slug alphabet left) are
// skipped.
func (c *Context) record(unit, keySource, text string) (string, bool) {
	key := slug.Derive(keySource)
	if key == "" {
		return "", false
	}

	folded := foldUnit(unit)

	c.Catalog.Upsert(folded, key, text)

	c.units[folded] = struct{}{}
	c.touched[c.cur] = struct{}{}
	c.Replacements++

	return folded + "." + key, true
}

// lookupCall renders the replacement expression: the lookup function applied
// to the namespaced key, plus a map literal of bindings for templates.
func (c *Context) lookupCall(ref string, bindings []binding) string {
	if len(bindings) == 0 {
		return fmt.Sprintf("t(%q)", ref)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "t(%q, map[string]any{", ref)

	for i, bd := range bindings {
		if i > 0 {
			b.WriteString(", ")
		}

		fmt.Fprintf(&b, "%q: %s", bd.name, bd.expr)
	}

	b.WriteString("})")

	return b.String()
}

// inject ensures every touched unit binds the lookup function and that the
// file imports the lookup package. Both operations are idempotent.
func (c *Context) inject() {
	if len(c.touched) == 0 {
		return
	}

	for i := range c.File.Nodes {
		if _, ok := c.touched[i]; !ok {
			continue
		}

		ht, ok := c.File.Nodes[i].(parser.HTMLTemplate)
		if !ok {
			continue
		}

		if ensureHook(&ht, c.lookupPkg) {
			c.mutated = true
		}

		c.File.Nodes[i] = ht
	}

	if ensureImport(c.File, c.LookupImport) {
		c.mutated = true
	}
}
