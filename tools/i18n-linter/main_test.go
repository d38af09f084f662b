// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeysFlatAndNested(t *testing.T) {
	p := filepath.Join(t.TempDir(), "en.yaml")
	src := "\"apps.created\": \"App %s created.\"\nlogin:\n  title: \"Login\"\n"
	require.NoError(t, os.WriteFile(p, []byte(src), 0o600))

	keys, err := loadKeysFromLocale(p)
	require.NoError(t, err)
	assert.Contains(t, keys, "apps.created")
	assert.Contains(t, keys, "login.title")
	assert.Len(t, keys, 2)
}

func TestFindUsedKeysSkipsToolsAndUnderscoreDirs(t *testing.T) {
	root := t.TempDir()
	write := func(rel, src string) {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(src), 0o644))
	}
	write("internal/tui/a.go", "package tui\nfunc f() { _ = i18n.T(\"apps.title\", 1) }\n")
	write("internal/validation/m.go", "package validation\nvar m = []string{\"form.app_name\"}\n")
	write("internal/tui/a_test.go", "package tui\nvar _ = i18n.T(\"test.only\")\n")
	write("_examples/x/b.go", "package x\nvar _ = i18n.T(\"other.key\")\n")
	write("tools/y/c.go", "package y\nvar _ = i18n.T(\"tool.key\")\n")

	used, err := findUsedKeys(root)
	require.NoError(t, err)
	assert.Contains(t, used, "apps.title")
	assert.Contains(t, used, "form.app_name")
	assert.NotContains(t, used, "test.only")
	assert.NotContains(t, used, "other.key")
	assert.NotContains(t, used, "tool.key")
	assert.Equal(t, 2, used["apps.title"].Line)
}

func TestKeyComparisons(t *testing.T) {
	locale := map[string]struct{}{"apps.title": {}, "apps.empty": {}, "login.title": {}}
	used := map[string]Location{
		"apps.title":   {},
		"apps.missing": {},
		"hubclient.db": {},
	}

	assert.Equal(t, []string{"apps.missing"}, undefinedKeys(used, locale))
	assert.Equal(t, []string{"apps.empty", "login.title"}, orphanedKeys(locale, used))
	assert.Equal(t, []string{"apps.empty"}, missingKeys(locale, map[string]struct{}{"apps.title": {}, "login.title": {}}))
}
