// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package validation holds the input rules shared by every form in hubclient.
// The hub applies the same rules server-side; checking locally lets forms
// reject bad input before any request is sent.
package validation

import (
	"fmt"
	"regexp"
)

// Field identifies a class of user input.
type Field int

const (
	Username Field = iota
	Password
	Email
	AppName
	VersionName
)

// Rule describes the accepted alphabet and length bounds of a field.
type Rule struct {
	Name    string // display name used in messages
	Symbols string // character class, e.g. "[0-9a-z]"
	Min     int
	Max     int
	// Pattern overrides the Symbols{Min,Max} expression when the field has
	// structure beyond a plain alphabet (email).
	Pattern string
}

const (
	defaultSymbols  = "[0-9a-z]"
	defaultMin      = 3
	defaultMax      = 20
	passwordSymbols = "[a-zA-Z0-9!@#$%&_,.?]"
	versionSymbols  = "[0-9a-z.]"
	emailSymbols    = "[a-zA-Z0-9._%+@-]"
	emailPattern    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	emailMax        = 64
)

var rules = map[Field]Rule{
	Username:    {Name: "username", Symbols: defaultSymbols, Min: defaultMin, Max: defaultMax},
	Password:    {Name: "password", Symbols: passwordSymbols, Min: 8, Max: 30},
	Email:       {Name: "email", Symbols: emailSymbols, Min: defaultMin, Max: emailMax, Pattern: emailPattern},
	AppName:     {Name: "app", Symbols: defaultSymbols, Min: defaultMin, Max: defaultMax},
	VersionName: {Name: "version", Symbols: versionSymbols, Min: defaultMin, Max: defaultMax},
}

var compiled = func() map[Field]*regexp.Regexp {
	m := make(map[Field]*regexp.Regexp, len(rules))
	for f, r := range rules {
		expr := r.Pattern
		if expr == "" {
			expr = fmt.Sprintf("^%s{%d,%d}$", r.Symbols, r.Min, r.Max)
		}
		m[f] = regexp.MustCompile(expr)
	}
	return m
}()

// RuleFor returns the rule of a field. Unknown fields get the default rule.
func RuleFor(f Field) Rule {
	if r, ok := rules[f]; ok {
		return r
	}
	return Rule{Name: "input", Symbols: defaultSymbols, Min: defaultMin, Max: defaultMax}
}

// String returns the display name of the field.
func (f Field) String() string {
	return RuleFor(f).Name
}

// Validate reports whether value fully matches the rule of field.
func Validate(f Field, value string) bool {
	re, ok := compiled[f]
	if !ok {
		re = compiled[Username]
	}
	r := RuleFor(f)
	// the email pattern carries no length bound of its own
	n := len([]rune(value))
	if n < r.Min || n > r.Max {
		return false
	}
	return re.MatchString(value)
}

// Message returns the user-facing explanation for a rejected value.
func Message(f Field) string {
	r := RuleFor(f)
	return fmt.Sprintf("Invalid %s, allowed symbols are %s and the length must be between %d and %d.",
		r.Name, r.Symbols, r.Min, r.Max)
}

// InvalidInputError is returned by Check when a value breaks its field rule.
type InvalidInputError struct {
	Field Field
}

func (e *InvalidInputError) Error() string {
	return Message(e.Field)
}

// Check returns an *InvalidInputError when value is not acceptable for f.
func Check(f Field, value string) error {
	if Validate(f, value) {
		return nil
	}
	return &InvalidInputError{Field: f}
}
