// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package validation

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Tags usable in `validate:"..."` struct tags.
var tags = map[string]Field{
	"username":     Username,
	"password":     Password,
	"email":        Email,
	"app_name":     AppName,
	"version_name": VersionName,
}

var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

func instance() *validator.Validate {
	structOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		for tag, field := range tags {
			f := field
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return Validate(f, fl.Field().String())
			})
		}
		structValidator = v
	})
	return structValidator
}

// Struct validates a form struct tagged with the field tags above and
// returns one *InvalidInputError per rejected field, in declaration order.
// Non-validation failures (e.g. a nil pointer) are returned as-is.
func Struct(s any) []error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{err}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		if f, ok := tags[fe.Tag()]; ok {
			out = append(out, &InvalidInputError{Field: f})
			continue
		}
		out = append(out, fe)
	}
	return out
}
