// Copyright 2025 - 2026, Bartosz Jarocki and the templ-i18next contributors
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	c := Load(filepath.Join(t.TempDir(), "nope.json"), "")

	require.NotNil(t, c)
	require.Empty(t, c)
}

func TestLoad_MalformedJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"welcome": {`), 0o644))

	c := Load(path, "")

	require.NotNil(t, c)
	require.Empty(t, c)
}

func TestLoad_RootKey(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{
  "app": {
    "welcome": {
      "hello-world": "Hello World"
    }
  },
  "other": {}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := Load(path, "app")
	require.Equal(t, "Hello World", c["welcome"]["hello-world"])

	// A missing root key yields an empty catalog, not the whole document.
	require.Empty(t, Load(path, "missing"))
}

func TestLoad_RootKeyWithDot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"feature.checkout": {"welcome": {"k": "v"}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c := Load(path, "feature.checkout")
	require.Equal(t, "v", c["welcome"]["k"])
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")

	c := Catalog{}
	c.Upsert("welcome", "hello-world", "Hello World")
	c.Upsert("profile", "edit", "Edit")

	require.NoError(t, Save(path, c, "app"))

	got := Load(path, "app")
	if diff := cmp.Diff(c, got); diff != "" {
		t.Errorf("catalog round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	c := Catalog{}
	c.Upsert("zeta", "z-key", "Z")
	c.Upsert("alpha", "a-key", "A")
	c.Upsert("alpha", "b-key", "B")

	require.NoError(t, Save(first, c, ""))
	require.NoError(t, Save(second, c, ""))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)

	require.Equal(t, string(a), string(b))

	// Sorted keys: "alpha" must serialize before "zeta".
	require.Less(t, indexOf(t, a, `"alpha"`), indexOf(t, a, `"zeta"`))
}

func TestUpsert_LastWriteWins(t *testing.T) {
	t.Parallel()

	c := Catalog{}
	c.Upsert("welcome", "hello", "Hello!")
	c.Upsert("welcome", "hello", "Hello.")

	require.Equal(t, "Hello.", c["welcome"]["hello"])

	units, entries := c.Stats()
	require.Equal(t, 1, units)
	require.Equal(t, 1, entries)
}

func indexOf(t *testing.T, data []byte, sub string) int {
	t.Helper()

	idx := bytes.Index(data, []byte(sub))
	require.GreaterOrEqual(t, idx, 0, "substring %q not found", sub)

	return idx
}
