// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the message IDs used in the
// Go sources. It reports IDs used in code but missing from the primary
// locale, IDs missing from the secondary locales, and orphaned entries.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
	projectRoot   = "."
)

var (
	tCallRe = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	// IDs passed around as plain literals, e.g. validation message tables.
	idLiteralRe = regexp.MustCompile(`"([a-z]+\.[a-z_]+(?:\.[a-z_]+)*)"`)
)

func main() {
	fmt.Println("Running i18n linter...")

	usedKeys, err := findUsedKeys(projectRoot)
	if err != nil {
		fail("finding used keys: %v", err)
	}
	fmt.Printf("Found %d message IDs used in source code.\n", len(usedKeys))

	primaryKeys, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fail("loading primary locale %s: %v", primaryLocale, err)
	}
	fmt.Printf("Loaded %d IDs from %s.\n\n", len(primaryKeys), primaryLocale)

	localeFiles, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		fail("finding locale files: %v", err)
	}

	failed := false

	fmt.Println("--- Used in code but not translated ---")
	missing := undefinedKeys(usedKeys, primaryKeys)
	for _, key := range missing {
		loc := usedKeys[key]
		fmt.Printf("  - %s (%s:%d)\n", key, loc.Filepath, loc.Line)
	}
	if len(missing) == 0 {
		fmt.Println("  none")
	}
	failed = failed || len(missing) > 0
	fmt.Println()

	fmt.Println("--- Missing from secondary locales ---")
	for _, file := range localeFiles {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		secondary, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("  %s: %v\n", file, err)
			failed = true
			continue
		}
		gaps := missingKeys(primaryKeys, secondary)
		for _, key := range gaps {
			fmt.Printf("  - %s: %s\n", filepath.Base(file), key)
		}
		if len(gaps) == 0 {
			fmt.Printf("  %s: complete\n", filepath.Base(file))
		}
		failed = failed || len(gaps) > 0
	}
	fmt.Println()

	// Orphans are a warning; some IDs are built at runtime.
	fmt.Println("--- Orphaned (translated but never referenced) ---")
	orphans := orphanedKeys(primaryKeys, usedKeys)
	for _, key := range orphans {
		fmt.Printf("  - %s\n", key)
	}
	if len(orphans) == 0 {
		fmt.Println("  none")
	}

	if failed {
		fmt.Println("\nLocale files need attention.")
		os.Exit(1)
	}
	fmt.Println("\nAll locale files are consistent.")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "i18n-linter: "+format+"\n", args...)
	os.Exit(1)
}

// findUsedKeys scans non-test .go files below root for message IDs and
// records the first place each one appears. Directories starting with "_"
// or "." and the tools tree are skipped.
func findUsedKeys(root string) (map[string]Location, error) {
	keys := make(map[string]Location)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range tCallRe.FindAllStringSubmatch(line, -1) {
				record(keys, m[1], path, i+1)
			}
			for _, m := range idLiteralRe.FindAllStringSubmatch(line, -1) {
				record(keys, m[1], path, i+1)
			}
		}
		return nil
	})
	return keys, err
}

func record(keys map[string]Location, key, path string, line int) {
	if _, seen := keys[key]; !seen {
		keys[key] = Location{Filepath: path, Line: line}
	}
}

// undefinedKeys returns the IDs passed to i18n.T that the locale lacks.
// Plain literals are only counted when their prefix is a known namespace,
// so file names like "hubclient.db" are not reported.
func undefinedKeys(used map[string]Location, locale map[string]struct{}) []string {
	namespaces := make(map[string]struct{})
	for key := range locale {
		namespaces[strings.SplitN(key, ".", 2)[0]] = struct{}{}
	}
	var out []string
	for key := range used {
		if _, ok := locale[key]; ok {
			continue
		}
		if _, ok := namespaces[strings.SplitN(key, ".", 2)[0]]; !ok {
			continue
		}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func missingKeys(primary, secondary map[string]struct{}) []string {
	var out []string
	for key := range primary {
		if _, ok := secondary[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func orphanedKeys(locale map[string]struct{}, used map[string]Location) []string {
	var out []string
	for key := range locale {
		if _, ok := used[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// loadKeysFromLocale reads a YAML locale and returns its message IDs.
// Both flat dotted keys and nested maps are accepted.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys.
func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
