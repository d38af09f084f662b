// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Table(t *testing.T) {
	cases := []struct {
		name  string
		field Field
		value string
		want  bool
	}{
		{"username ok", Username, "sample", true},
		{"username too short", Username, "ad", false},
		{"username uppercase", Username, "Sample", false},
		{"username max", Username, strings.Repeat("a", 20), true},
		{"username over max", Username, strings.Repeat("a", 21), false},
		{"username empty", Username, "", false},
		{"password ok", Password, "Passw0rd!", true},
		{"password too short", Password, "pass", false},
		{"password bad symbol", Password, "password^^", false},
		{"password max", Password, strings.Repeat("x", 30), true},
		{"email ok", Email, "admin@admin.com", true},
		{"email missing at", Email, "admin.admin.com", false},
		{"email too long", Email, strings.Repeat("a", 60) + "@b.com", false},
		{"app ok", AppName, "gitea", true},
		{"app dot", AppName, "git.ea", false},
		{"version ok", VersionName, "1.4", true},
		{"version uppercase", VersionName, "V1.0", false},
		{"version too short", VersionName, "as", false},
		{"unicode", Username, "ääää", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Validate(c.field, c.value); got != c.want {
				t.Fatalf("Validate(%v, %q) = %v, want %v", c.field, c.value, got, c.want)
			}
		})
	}
}

func TestMessage_Username(t *testing.T) {
	want := "Invalid username, allowed symbols are [0-9a-z] and the length must be between 3 and 20."
	if got := Message(Username); got != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", got, want)
	}
}

func TestMessage_PasswordAndVersion(t *testing.T) {
	if got := Message(Password); got != "Invalid password, allowed symbols are [a-zA-Z0-9!@#$%&_,.?] and the length must be between 8 and 30." {
		t.Fatalf("unexpected password message: %s", got)
	}
	if got := Message(VersionName); got != "Invalid version, allowed symbols are [0-9a-z.] and the length must be between 3 and 20." {
		t.Fatalf("unexpected version message: %s", got)
	}
}

func TestCheck_ReturnsTypedError(t *testing.T) {
	if err := Check(AppName, "gitea"); err != nil {
		t.Fatalf("expected nil for valid app name, got %v", err)
	}
	err := Check(AppName, "x")
	var inv *InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
	if inv.Field != AppName || !strings.HasPrefix(err.Error(), "Invalid app,") {
		t.Fatalf("unexpected error: %v", err)
	}
}

type registrationForm struct {
	User     string `validate:"username"`
	Password string `validate:"password"`
	Email    string `validate:"email"`
}

func TestStruct_ReportsEachField(t *testing.T) {
	if errs := Struct(registrationForm{User: "sample", Password: "password", Email: "a@b.de"}); len(errs) != 0 {
		t.Fatalf("expected valid form, got %v", errs)
	}
	errs := Struct(registrationForm{User: "A", Password: "short", Email: "a@b.de"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != Message(Username) || errs[1].Error() != Message(Password) {
		t.Fatalf("unexpected messages: %v", errs)
	}
}
