// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/apphub/hubclient/internal/model"
)

func TestNew_IsUnauthenticated(t *testing.T) {
	s := New()
	if got := s.Snapshot(); got != (Session{}) {
		t.Fatalf("expected zero session, got %+v", got)
	}
}

func TestLogin_SetsUserAndClearsSelection(t *testing.T) {
	s := New()
	if err := s.Login("sample"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.SelectApp(model.App{Name: "gitea", ID: "1"})
	if err := s.Login("other"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	got := s.Snapshot()
	if !got.IsAuthenticated || got.User != "other" || got.HasSelection() {
		t.Fatalf("unexpected state after re-login: %+v", got)
	}
}

func TestLogin_RejectsEmptyUser(t *testing.T) {
	s := New()
	if err := s.Login(""); !errors.Is(err, ErrEmptyUser) {
		t.Fatalf("expected ErrEmptyUser, got %v", err)
	}
	if s.IsAuthenticated() {
		t.Fatalf("empty login must not authenticate")
	}
}

func TestLogout_ResetsEverythingAndIsIdempotent(t *testing.T) {
	s := New()
	_ = s.Login("sample")
	s.SelectApp(model.App{Name: "gitea", ID: "1"})

	s.Logout()
	if got := s.Snapshot(); got != (Session{}) {
		t.Fatalf("expected reset session, got %+v", got)
	}
	s.Logout()
	if got := s.Snapshot(); got != (Session{}) {
		t.Fatalf("second logout changed state: %+v", got)
	}
}

func TestInvalidate(t *testing.T) {
	s := New()
	_ = s.Login("sample")
	s.Invalidate()
	if s.IsAuthenticated() || s.User() != "" {
		t.Fatalf("invalidate did not reset: %+v", s.Snapshot())
	}
}

func TestSelectApp_IgnoredWhenLoggedOut(t *testing.T) {
	s := New()
	s.SelectApp(model.App{Name: "gitea", ID: "1"})
	if s.Snapshot().HasSelection() {
		t.Fatalf("selection must require an authenticated session")
	}
}

func TestSelectAndClear(t *testing.T) {
	s := New()
	_ = s.Login("sample")
	s.SelectApp(model.App{Name: "gitea", ID: "7"})
	got := s.Snapshot()
	if got.SelectedApp != "gitea" || got.SelectedAppID != "7" {
		t.Fatalf("unexpected selection: %+v", got)
	}
	s.ClearSelection()
	if s.Snapshot().HasSelection() {
		t.Fatalf("selection not cleared")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Login("sample")
			s.SelectApp(model.App{Name: "gitea", ID: "1"})
		}()
		go func() {
			defer wg.Done()
			snap := s.Snapshot()
			if snap.IsAuthenticated && snap.User == "" {
				t.Errorf("authenticated without user: %+v", snap)
			}
			s.Logout()
		}()
	}
	wg.Wait()
}
