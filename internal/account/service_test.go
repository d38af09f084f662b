// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package account

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/apphub/hubclient/internal/hubapi"
	"github.com/apphub/hubclient/internal/hubtest"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/router"
	"github.com/apphub/hubclient/internal/session"
	"github.com/apphub/hubclient/internal/validation"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []model.Activity
}

func (m *memRecorder) LogAction(_ context.Context, e model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRecorder) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

func setup(t *testing.T) (*hubtest.Hub, *hubapi.Client, *session.Store, *Service, *memRecorder) {
	t.Helper()
	hub, srv := hubtest.NewServer(t)
	s := session.New()
	c, err := hubapi.New(srv.URL, hubapi.WithUnauthorizedHandler(s.Invalidate))
	if err != nil {
		t.Fatalf("hubapi.New: %v", err)
	}
	rec := &memRecorder{}
	return hub, c, s, New(c, s, WithRecorder(rec, c.Server())), rec
}

func TestLogin_ValidatesLocally(t *testing.T) {
	hub, _, s, svc, _ := setup(t)
	err := svc.Login(context.Background(), "ad", "password")
	var inv *validation.InvalidInputError
	if !errors.As(err, &inv) || inv.Field != validation.Username {
		t.Fatalf("expected username error, got %v", err)
	}
	if err.Error() != "Invalid username, allowed symbols are [0-9a-z] and the length must be between 3 and 20." {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if hub.Calls(hubapi.PathLogin) != 0 || s.IsAuthenticated() {
		t.Fatalf("invalid input must not reach the hub")
	}
}

func TestLogin_ReportsEveryInvalidField(t *testing.T) {
	hub, _, _, svc, _ := setup(t)
	err := svc.Login(context.Background(), "ad", "pass")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	want := validation.Message(validation.Username) + "\n" + validation.Message(validation.Password)
	if err.Error() != want {
		t.Fatalf("expected both messages, got %q", err.Error())
	}
	var inv *validation.InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("expected *InvalidInputError inside %v", err)
	}
	if hub.Calls(hubapi.PathLogin) != 0 {
		t.Fatalf("invalid input must not reach the hub")
	}
}

func TestRegister_ReportsEveryInvalidField(t *testing.T) {
	hub, _, _, svc, _ := setup(t)
	err := svc.Register(context.Background(), model.RegistrationForm{User: "A", Password: "pw", Email: "nope"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, f := range []validation.Field{validation.Username, validation.Password, validation.Email} {
		if !strings.Contains(err.Error(), validation.Message(f)) {
			t.Fatalf("missing %s message in %q", f, err.Error())
		}
	}
	if hub.Calls(hubapi.PathRegistration) != 0 {
		t.Fatalf("invalid input must not reach the hub")
	}
}

func TestLoginLogout(t *testing.T) {
	hub, _, s, svc, rec := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()

	if err := svc.Login(ctx, "sample", "password"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if snap := s.Snapshot(); !snap.IsAuthenticated || snap.User != "sample" {
		t.Fatalf("session not authenticated: %+v", snap)
	}
	s.SelectApp(model.App{Name: "gitea", ID: "1"})

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if snap := s.Snapshot(); snap != (session.Session{}) {
		t.Fatalf("logout must reset the session, got %+v", snap)
	}
	got := rec.actions()
	if len(got) != 2 || got[0] != ActionLogin || got[1] != ActionLogout {
		t.Fatalf("unexpected activity %v", got)
	}
}

func TestLogout_ThenGuardRedirects(t *testing.T) {
	hub, c, s, svc, _ := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()
	g := router.New(s, c)

	_ = svc.Login(ctx, "sample", "password")
	if d := g.Navigate(ctx, "/"); d.Route != router.Apps {
		t.Fatalf("expected apps, got %+v", d)
	}
	_ = svc.Logout(ctx)
	if d := g.Navigate(ctx, "/"); d.Route != router.Login {
		t.Fatalf("expected login after logout, got %+v", d)
	}
}

func TestGuard_RestoresSessionFromCookie(t *testing.T) {
	hub, c, _, svc, _ := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()
	_ = svc.Login(ctx, "sample", "password")

	// a fresh session, as after a restart, but the cookie is still valid
	fresh := session.New()
	g := router.New(fresh, c)
	d := g.Navigate(ctx, "/")
	if d.Route != router.Apps || !d.Checked {
		t.Fatalf("expected checked navigation to apps, got %+v", d)
	}
	if fresh.User() != "sample" {
		t.Fatalf("liveness check must authenticate the session")
	}
}

func TestLogout_HubDownStillResets(t *testing.T) {
	s := session.New()
	_ = s.Login("sample")
	failing := hubapi.NewMockHub(nil, hubapi.MockHubOverwrites{
		Logout: func(context.Context) error { return &hubapi.Error{Message: hubapi.UnknownErrorMessage} },
	})
	svc := New(failing, s)
	if err := svc.Logout(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if s.IsAuthenticated() {
		t.Fatalf("session must be reset even if the hub is unreachable")
	}
}

func TestRegisterValidateLogin(t *testing.T) {
	hub, _, s, svc, _ := setup(t)
	ctx := context.Background()
	form := model.RegistrationForm{User: "newbie", Password: "password", Email: "newbie@example.com"}

	if err := svc.Register(ctx, model.RegistrationForm{User: "newbie", Password: "password", Email: "bad"}); err == nil {
		t.Fatalf("expected invalid email")
	}
	if err := svc.Register(ctx, form); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Validate(ctx, ""); !errors.Is(err, ErrEmptyCode) {
		t.Fatalf("expected ErrEmptyCode, got %v", err)
	}
	if err := svc.Validate(ctx, hub.ValidationCode("newbie")); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := svc.Login(ctx, "newbie", "password"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.User() != "newbie" {
		t.Fatalf("unexpected user %q", s.User())
	}
}

func TestChangePassword(t *testing.T) {
	hub, _, _, svc, _ := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()
	_ = svc.Login(ctx, "sample", "password")

	if err := svc.ChangePassword(ctx, "password", "short"); err == nil {
		t.Fatalf("expected invalid new password")
	}
	if err := svc.ChangePassword(ctx, "password", "password2"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	_ = svc.Logout(ctx)
	if err := svc.Login(ctx, "sample", "password2"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestDeleteAccount_InvalidatesSession(t *testing.T) {
	hub, c, s, svc, rec := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()
	_ = svc.Login(ctx, "sample", "password")

	if err := svc.DeleteAccount(ctx); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}
	if s.IsAuthenticated() || hub.HasUser("sample") {
		t.Fatalf("account must be gone and session reset")
	}
	if d := router.New(s, c).Navigate(ctx, "/"); d.Route != router.Login {
		t.Fatalf("expected redirect to login, got %+v", d)
	}
	got := rec.actions()
	if got[len(got)-1] != ActionDeleteAccount {
		t.Fatalf("delete not recorded: %v", got)
	}
	if rec.entries[len(rec.entries)-1].Username != "sample" {
		t.Fatalf("delete must be recorded for the deleted user")
	}
}

func TestServerRejectedSession_InvalidatesViaHook(t *testing.T) {
	hub, c, s, svc, _ := setup(t)
	hub.SeedUser("sample", "password", "sample@example.com")
	ctx := context.Background()
	_ = svc.Login(ctx, "sample", "password")

	hub.ExpireSessions()
	if _, err := c.ListApps(ctx); err == nil {
		t.Fatalf("expected 401")
	}
	if s.IsAuthenticated() {
		t.Fatalf("a rejected session must reset the store")
	}
}
