// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package versions

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/apphub/hubclient/internal/archive"
	"github.com/apphub/hubclient/internal/model"
)

func TestReadUpload_Directory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "1.0.0")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, archive.ComposeFile), []byte("services: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	name, data, err := ReadUpload(dir)
	if err != nil {
		t.Fatalf("ReadUpload: %v", err)
	}
	if name != "1.0.0.zip" {
		t.Fatalf("unexpected name %q", name)
	}
	if ok, err := archive.HasCompose(data); err != nil || !ok {
		t.Fatalf("zipped directory must contain the compose file: %v", err)
	}
}

func TestReadUpload_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.txt")
	_ = os.WriteFile(p, []byte("hello"), 0o644)
	name, data, err := ReadUpload(p)
	if err != nil || name != "notes.txt" || string(data) != "hello" {
		t.Fatalf("unexpected %q %q %v", name, data, err)
	}
	if _, _, err := ReadUpload(filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestSaveDownload(t *testing.T) {
	content, err := archive.Build(map[string][]byte{archive.ComposeFile: []byte("services: {}\n")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "downloads")
	info := &model.FullVersionInfo{Maintainer: "sample", AppName: "gitea", VersionName: "1.0.0", Content: content}

	path, err := SaveDownload(dir, info)
	if err != nil {
		t.Fatalf("SaveDownload: %v", err)
	}
	if filepath.Base(path) != "sample_gitea_1.0.0.zip" {
		t.Fatalf("unexpected file name %q", path)
	}
	got, _ := os.ReadFile(path)
	if !bytes.Equal(got, content) {
		t.Fatalf("content differs")
	}
	if _, err := SaveDownload(dir, nil); err == nil {
		t.Fatalf("expected error for nil info")
	}
}
