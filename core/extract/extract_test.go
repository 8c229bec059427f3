// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package extract

import (
	"bytes"
	"strings"
	"testing"

	parser "github.com/a-h/templ/parser/v2"
	"github.com/stretchr/testify/require"

	"github.com/BartoszJarocki/templ-i18next/core/catalog"
)

const lookupImport = "example.com/webapp/i18n"

// transformSource parses src, runs the extraction passes against cat, and
// returns the context plus the rendered output.
func transformSource(t *testing.T, src string, cat catalog.Catalog) (*Context, string) {
	t.Helper()

	tf, err := parser.ParseString(src)
	require.NoError(t, err)

	c := NewContext(&tf, cat, lookupImport)
	c.Transform()

	var buf bytes.Buffer
	require.NoError(t, tf.Write(&buf))

	return c, buf.String()
}

func TestTransformWelcome(t *testing.T) {
	t.Parallel()

	source := `package views

import "fmt"

templ Welcome(user User) {
	<div class="greeting">
		Hello World
		<img src="/logo.png" alt="Site logo"/>
		<p>{ fmt.Sprintf("Hello %s, role %s", user.Name, user.Role) }</p>
	</div>
}
`

	cat := catalog.Catalog{}

	c, out := transformSource(t, source, cat)

	require.True(t, c.Changed())
	require.Equal(t, 3, c.Replacements)
	require.Equal(t, []string{"welcome"}, c.Units())

	wantEntries := map[string]string{
		"hello-world": "Hello World",
		"site-logo":   "Site logo",
		"hello-role":  "Hello {{name}}, role {{role}}",
	}

	require.Len(t, cat["welcome"], len(wantEntries))

	for key, text := range wantEntries {
		if got := cat["welcome"][key]; got != text {
			t.Errorf("catalog[welcome][%s] = %q, want %q", key, got, text)
		}
	}

	for _, want := range []string{
		`import "example.com/webapp/i18n"`,
		`t := i18n.Use(ctx)`,
		`t("welcome.hello-world")`,
		`t("welcome.site-logo")`,
		`t("welcome.hello-role", map[string]any{"name": user.Name, "role": user.Role})`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q\n%s", want, out)
		}
	}

	// The source URL attribute and the class stay untouched.
	for _, keep := range []string{`src="/logo.png"`, `class="greeting"`} {
		if !strings.Contains(out, keep) {
			t.Errorf("rendered output should keep %q\n%s", keep, out)
		}
	}
}

func TestTransformSkipsNonCandidates(t *testing.T) {
	t.Parallel()

	source := `package views

templ Pager(next string) {
	<div>
		42
		<span>|</span>
		<a href={ "/page/" + next } class="pager-link">Next</a>
	</div>
}
`

	cat := catalog.Catalog{}

	c, out := transformSource(t, source, cat)

	// Only "Next" is translatable; the number, the separator, and the href
	// expression are not.
	require.Equal(t, 1, c.Replacements)
	require.Equal(t, "Next", cat["pager"]["next"])

	if !strings.Contains(out, `"/page/" + next`) {
		t.Errorf("href expression was rewritten:\n%s", out)
	}

	if strings.Contains(out, `t("pager.42")`) || strings.Contains(out, "pager.page") {
		t.Errorf("non-candidate was extracted:\n%s", out)
	}
}

func TestTransformAttributeLists(t *testing.T) {
	t.Parallel()

	source := `package views

templ SearchBox(query string) {
	<form>
		<input name="q" placeholder="Search artworks" title={ "Results for " + query }/>
	</form>
}
`

	cat := catalog.Catalog{}

	c, out := transformSource(t, source, cat)

	require.Equal(t, 2, c.Replacements)
	require.Equal(t, "Search artworks", cat["searchBox"]["search-artworks"])
	require.Equal(t, "Results for {{query}}", cat["searchBox"]["results-for"])

	// The name attribute is neither allow-listed nor an expression.
	if !strings.Contains(out, `name="q"`) {
		t.Errorf("name attribute was rewritten:\n%s", out)
	}

	if !strings.Contains(out, `t("searchBox.results-for", map[string]any{"query": query})`) {
		t.Errorf("title attribute not rewritten as expected:\n%s", out)
	}
}

func TestTransformControlFlow(t *testing.T) {
	t.Parallel()

	source := `package views

templ Status(ok bool) {
	if ok {
		<p>All good</p>
	} else {
		<p>Something broke</p>
	}
}
`

	cat := catalog.Catalog{}

	c, _ := transformSource(t, source, cat)

	require.Equal(t, 2, c.Replacements)
	require.Equal(t, "All good", cat["status"]["all-good"])
	require.Equal(t, "Something broke", cat["status"]["something-broke"])
}

func TestTransformMultipleUnits(t *testing.T) {
	t.Parallel()

	source := `package views

templ Header() {
	<h1>Site title</h1>
}

templ Footer() {
	<small>All rights reserved</small>
}
`

	cat := catalog.Catalog{}

	c, out := transformSource(t, source, cat)

	require.Equal(t, []string{"footer", "header"}, c.Units())
	require.Equal(t, "Site title", cat["header"]["site-title"])
	require.Equal(t, "All rights reserved", cat["footer"]["all-rights-reserved"])

	// Both units get their own hook; the import appears once.
	if got := strings.Count(out, "t := i18n.Use(ctx)"); got != 2 {
		t.Errorf("hook count = %d, want 2\n%s", got, out)
	}

	if got := strings.Count(out, `import "example.com/webapp/i18n"`); got != 1 {
		t.Errorf("import count = %d, want 1\n%s", got, out)
	}
}

func TestTransformKeyCollisionLastWins(t *testing.T) {
	t.Parallel()

	source := `package views

templ Banner() {
	<p>Don't stop</p>
	<p>Dont stop</p>
}
`

	cat := catalog.Catalog{}

	c, _ := transformSource(t, source, cat)

	// Both texts derive the key "dont-stop"; the later occurrence wins.
	require.Equal(t, 2, c.Replacements)
	require.Len(t, cat["banner"], 1)
	require.Equal(t, "Dont stop", cat["banner"]["dont-stop"])
}

func TestTransformIdempotent(t *testing.T) {
	t.Parallel()

	source := `package views

templ Welcome(name string) {
	<div>
		Hello World
		<p>{ "Hello " + name }</p>
	</div>
}
`

	cat := catalog.Catalog{}

	_, first := transformSource(t, source, cat)

	again := catalog.Catalog{}

	c, second := transformSource(t, first, again)

	if c.Changed() {
		t.Errorf("second run changed the file, %d replacements", c.Replacements)
	}

	require.Empty(t, again)
	require.Equal(t, first, second)
}

func TestTransformPreservesCatalogAcrossFiles(t *testing.T) {
	t.Parallel()

	cat := catalog.Catalog{}

	_, _ = transformSource(t, `package views

templ Header() {
	<h1>Site title</h1>
}
`, cat)

	_, _ = transformSource(t, `package views

templ Footer() {
	<small>All rights reserved</small>
}
`, cat)

	units, entries := cat.Stats()
	require.Equal(t, 2, units)
	require.Equal(t, 2, entries)
}

func TestUnitName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		decl string
		want string
	}{
		{name: "simple", decl: "Welcome()", want: "Welcome"},
		{name: "parameters", decl: "Welcome(user User, count int)", want: "Welcome"},
		{name: "whitespace", decl: "  Welcome ( ) ", want: "Welcome"},
		{name: "unresolvable", decl: "(receiver).Welcome()", want: UnknownFunctionName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ht := parser.HTMLTemplate{Expression: parser.Expression{Value: tt.decl}}

			if got := unitName(ht); got != tt.want {
				t.Errorf("unitName(%q) = %q, want %q", tt.decl, got, tt.want)
			}
		})
	}
}
