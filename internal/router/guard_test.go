// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package router

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/session"
)

type fakeChecker struct {
	user  string
	err   error
	calls atomic.Int32
}

func (f *fakeChecker) AuthCheck(context.Context) (string, error) {
	f.calls.Add(1)
	return f.user, f.err
}

func TestResolve(t *testing.T) {
	cases := map[string]Route{
		"":                 Apps,
		"/":                Apps,
		"/login":           Login,
		"/login/":          Login,
		"/versions?x=1":    Versions,
		"/validate?code=a": Validate,
		"/terms#top":       Terms,
		"/change-password": ChangePassword,
		"/registration":    Registration,
		"/nope":            NotFound,
		"/not-found":       NotFound,
	}
	for in, want := range cases {
		if got := Resolve(in); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNavigate_PublicRoutesNeverCheck(t *testing.T) {
	for _, p := range []string{"/login", "/registration", "/validate", "/terms"} {
		t.Run(p, func(t *testing.T) {
			fc := &fakeChecker{err: errors.New("down")}
			g := New(session.New(), fc)
			d := g.Navigate(context.Background(), p)
			if d.Redirected() || d.Checked {
				t.Fatalf("public route %s: unexpected decision %+v", p, d)
			}
			if fc.calls.Load() != 0 {
				t.Fatalf("public route %s issued %d checks", p, fc.calls.Load())
			}
		})
	}
}

func TestNavigate_AuthenticatedSkipsCheck(t *testing.T) {
	fc := &fakeChecker{err: errors.New("must not be called")}
	s := session.New()
	_ = s.Login("sample")
	g := New(s, fc)

	d := g.Navigate(context.Background(), "/")
	if d.Route != Apps || d.Checked {
		t.Fatalf("unexpected decision %+v", d)
	}
	if fc.calls.Load() != 0 {
		t.Fatalf("expected no liveness check, got %d", fc.calls.Load())
	}
	if g.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %s", g.State())
	}
}

func TestNavigate_CheckSuccessLogsIn(t *testing.T) {
	fc := &fakeChecker{user: "sample"}
	s := session.New()
	g := New(s, fc)

	d := g.Navigate(context.Background(), "/change-password")
	if d.Route != ChangePassword || !d.Checked {
		t.Fatalf("unexpected decision %+v", d)
	}
	snap := s.Snapshot()
	if !snap.IsAuthenticated || snap.User != "sample" {
		t.Fatalf("session not authenticated: %+v", snap)
	}
	if g.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %s", g.State())
	}

	// the next navigation reuses the session
	g.Navigate(context.Background(), "/")
	if fc.calls.Load() != 1 {
		t.Fatalf("expected one check in total, got %d", fc.calls.Load())
	}
}

func TestNavigate_CheckFailureRedirectsToLogin(t *testing.T) {
	for _, p := range []string{"/", "/versions", "/change-password", "/does-not-exist"} {
		t.Run(p, func(t *testing.T) {
			fc := &fakeChecker{err: errors.New("401")}
			s := session.New()
			g := New(s, fc)

			d := g.Navigate(context.Background(), p)
			if d.Route != Login || !d.Redirected() {
				t.Fatalf("expected redirect to login, got %+v", d)
			}
			if s.IsAuthenticated() {
				t.Fatalf("session must stay unauthenticated")
			}
			if g.State() != Unauthenticated {
				t.Fatalf("expected Unauthenticated, got %s", g.State())
			}
		})
	}
}

func TestNavigate_EmptyUserFromCheckIsRejected(t *testing.T) {
	g := New(session.New(), &fakeChecker{user: ""})
	if d := g.Navigate(context.Background(), "/"); d.Route != Login {
		t.Fatalf("expected redirect, got %+v", d)
	}
}

func TestNavigate_LogoutThenProtectedRedirects(t *testing.T) {
	fc := &fakeChecker{user: "sample"}
	s := session.New()
	g := New(s, fc)
	g.Navigate(context.Background(), "/")

	s.Logout()
	fc.err = errors.New("cookie cleared")
	d := g.Navigate(context.Background(), "/")
	if d.Route != Login {
		t.Fatalf("expected login after logout, got %+v", d)
	}
}

func TestNavigate_SelectionRules(t *testing.T) {
	s := session.New()
	_ = s.Login("sample")
	g := New(s, &fakeChecker{})
	ctx := context.Background()

	if d := g.Navigate(ctx, "/versions"); d.Route != Apps {
		t.Fatalf("versions without selection must fall back to apps, got %+v", d)
	}

	s.SelectApp(model.App{Name: "gitea", ID: "1"})
	if d := g.Navigate(ctx, "/versions"); d.Route != Versions {
		t.Fatalf("expected versions, got %+v", d)
	}
	if !s.Snapshot().HasSelection() {
		t.Fatalf("navigating to versions must keep the selection")
	}

	g.Navigate(ctx, "/change-password")
	if s.Snapshot().HasSelection() {
		t.Fatalf("leaving app management must clear the selection")
	}
}

func TestNavigate_ConcurrentChecksAreIndependent(t *testing.T) {
	fc := &fakeChecker{user: "sample"}
	g := New(session.New(), fc)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Navigate(context.Background(), "/change-password")
		}()
	}
	wg.Wait()
	if n := fc.calls.Load(); n < 1 || n > 5 {
		t.Fatalf("unexpected number of checks: %d", n)
	}
}
