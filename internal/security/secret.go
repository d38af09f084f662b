// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds the session cookie in a wrapper that never shows
// its value when formatted, logged or marshaled.
package security

import (
	"encoding/json"
	"fmt"
	"io"
)

const redacted = "[SECRET]"

// Secret holds sensitive material such as the hub session cookie.
type Secret []byte

// FromString copies in into a Secret.
func FromString(in string) Secret {
	if in == "" {
		return nil
	}
	return Secret(in)
}

// String redacts the secret for fmt.Print* convenience.
func (s Secret) String() string { return redacted }

// Format implements fmt.Formatter so every verb, %#v included, is redacted.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

// MarshalJSON redacts secrets in JSON output.
func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

// MarshalText redacts secrets for text encoders such as YAML.
func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Empty reports whether the secret holds no data.
func (s Secret) Empty() bool { return len(s) == 0 }

// Reveal returns the plain value. Only hand it to the transport or the
// database.
func (s Secret) Reveal() string { return string(s) }

// Zero overwrites the underlying bytes.
func (s *Secret) Zero() {
	if s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}
