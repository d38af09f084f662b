// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"testing"
	"time"
)

func TestVersionCreated(t *testing.T) {
	v := Version{Name: "1.4", CreationTimestamp: time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)}
	if got := v.Created(); got != "March 5, 2024" {
		t.Fatalf("unexpected date: %q", got)
	}
	if got := (Version{}).Created(); got != "-" {
		t.Fatalf("expected placeholder for zero time, got %q", got)
	}
}

func TestFullVersionInfoFileName(t *testing.T) {
	f := FullVersionInfo{Maintainer: "sample", AppName: "gitea", VersionName: "1.4"}
	if got := f.FileName(); got != "sample_gitea_1.4.zip" {
		t.Fatalf("unexpected file name: %q", got)
	}
}

func TestAppString(t *testing.T) {
	if got := (App{Maintainer: "sample", Name: "gitea"}).String(); got != "sample/gitea" {
		t.Fatalf("unexpected app string: %q", got)
	}
}
