// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package archive

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildAndEntries(t *testing.T) {
	data, err := Build(map[string][]byte{
		ComposeFile: []byte("services: {}\n"),
		"app.env":   []byte("A=1\n"),
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	names, err := Entries(data)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"app.env", ComposeFile}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	ok, err := HasCompose(data)
	if err != nil || !ok {
		t.Fatalf("HasCompose = %v, %v", ok, err)
	}
}

func TestEntries_RejectsGarbage(t *testing.T) {
	if _, err := Entries([]byte("definitely not a zip")); !errors.Is(err, ErrNotZip) {
		t.Fatalf("expected ErrNotZip, got %v", err)
	}
	if _, err := Entries(nil); !errors.Is(err, ErrNotZip) {
		t.Fatalf("expected ErrNotZip for empty input, got %v", err)
	}
}

func TestZipDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ComposeFile), []byte("services: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "conf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "conf", "app.ini"), []byte("[x]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".git", "HEAD"), []byte("ref"), 0o600); err != nil {
		t.Fatal(err)
	}

	data, err := ZipDir(dir)
	if err != nil {
		t.Fatalf("ZipDir: %v", err)
	}
	names, err := Entries(data)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	want := []string{"conf/app.ini", ComposeFile}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
}

func TestZipDir_Empty(t *testing.T) {
	if _, err := ZipDir(t.TempDir()); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
