// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package archive builds and inspects the zip archives uploaded as versions.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ComposeFile must be present at the top level of every version archive.
const ComposeFile = "docker-compose.yml"

// ErrNotZip is returned when data can't be read as a zip archive.
var ErrNotZip = errors.New("not a zip archive")

// Build creates a zip archive from name/content pairs. Entries are written in
// sorted order so identical input yields identical archives.
func Build(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, n := range names {
		w, err := zw.Create(filepath.ToSlash(n))
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", n, err)
		}
		if _, err := w.Write(files[n]); err != nil {
			return nil, fmt.Errorf("write %s: %w", n, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ZipDir archives the regular files below dir, using paths relative to dir.
// Hidden files and directories are skipped.
func ZipDir(dir string) ([]byte, error) {
	files := map[string][]byte{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s contains no files", dir)
	}
	return Build(files)
}

// Entries lists the file names inside a zip archive.
func Entries(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotZip, err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	return names, nil
}

// HasCompose reports whether the archive contains ComposeFile at its root.
func HasCompose(data []byte) (bool, error) {
	names, err := Entries(data)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == ComposeFile {
			return true, nil
		}
	}
	return false, nil
}
