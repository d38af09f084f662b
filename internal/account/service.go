// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package account implements the account operations that change the session:
// login, logout, registration, email validation, password change and account
// deletion. Inputs are validated locally before anything is sent.
package account

import (
	"context"
	"errors"
	"time"

	"github.com/apphub/hubclient/internal/logging"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/session"
	"github.com/apphub/hubclient/internal/validation"
)

// Activity actions recorded by the service and its callers.
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionRegister       = "REGISTER"
	ActionValidate       = "VALIDATE_EMAIL"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionDeleteAccount  = "DELETE_ACCOUNT"
	ActionCreateApp      = "CREATE_APP"
	ActionDeleteApp      = "DELETE_APP"
	ActionUploadVersion  = "UPLOAD_VERSION"
	ActionDownload       = "DOWNLOAD_VERSION"
	ActionDeleteVersion  = "DELETE_VERSION"
)

// ErrEmptyCode is returned by Validate without a code.
var ErrEmptyCode = errors.New("validation code must not be empty")

// API is the part of the hub client the service needs.
type API interface {
	Register(ctx context.Context, form model.RegistrationForm) error
	ValidateEmail(ctx context.Context, code string) error
	Login(ctx context.Context, user, password string) error
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

// Recorder stores a local activity trail.
type Recorder interface {
	LogAction(ctx context.Context, entry model.Activity) error
}

// Service performs account operations and keeps the session in step.
type Service struct {
	api     API
	session *session.Store
	rec     Recorder
	server  string
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every account operation for server through rec.
func WithRecorder(rec Recorder, server string) Option {
	return func(s *Service) {
		s.rec = rec
		s.server = server
	}
}

// New returns a service writing to sess.
func New(api API, sess *session.Store, opts ...Option) *Service {
	s := &Service{api: api, session: sess}
	for _, o := range opts {
		o(s)
	}
	return s
}

// fieldErrors joins the rejected fields into one error, one message per
// line. errors.As still finds each *validation.InvalidInputError.
func fieldErrors(errs []error) error {
	return errors.Join(errs...)
}

// Login validates the credentials, logs in and authenticates the session.
func (s *Service) Login(ctx context.Context, user, password string) error {
	if err := fieldErrors(validation.Struct(model.LoginCredentials{User: user, Password: password})); err != nil {
		return err
	}
	if err := s.api.Login(ctx, user, password); err != nil {
		return err
	}
	if err := s.session.Login(user); err != nil {
		return err
	}
	s.Record(ctx, ActionLogin, "")
	return nil
}

// Logout ends the session. The local session is reset even when the hub
// could not be reached.
func (s *Service) Logout(ctx context.Context) error {
	s.Record(ctx, ActionLogout, "")
	err := s.api.Logout(ctx)
	s.session.Logout()
	return err
}

// Register validates the form and creates an account.
func (s *Service) Register(ctx context.Context, form model.RegistrationForm) error {
	if err := fieldErrors(validation.Struct(form)); err != nil {
		return err
	}
	if err := s.api.Register(ctx, form); err != nil {
		return err
	}
	s.recordAs(ctx, form.User, ActionRegister, form.Email)
	return nil
}

// Validate confirms an email address with its code.
func (s *Service) Validate(ctx context.Context, code string) error {
	if code == "" {
		return ErrEmptyCode
	}
	if err := s.api.ValidateEmail(ctx, code); err != nil {
		return err
	}
	s.Record(ctx, ActionValidate, "")
	return nil
}

// ChangePassword validates both passwords and changes the password.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	form := model.ChangePasswordForm{OldPassword: oldPassword, NewPassword: newPassword}
	if err := fieldErrors(validation.Struct(form)); err != nil {
		return err
	}
	if err := s.api.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return err
	}
	s.Record(ctx, ActionChangePassword, "")
	return nil
}

// DeleteAccount deletes the account and invalidates the session.
func (s *Service) DeleteAccount(ctx context.Context) error {
	user := s.session.User()
	if err := s.api.DeleteAccount(ctx); err != nil {
		return err
	}
	s.session.Invalidate()
	s.recordAs(ctx, user, ActionDeleteAccount, "")
	return nil
}

// Record adds an entry for the current user. Recording is best effort.
func (s *Service) Record(ctx context.Context, action, details string) {
	if s == nil || s.rec == nil {
		return
	}
	s.recordAs(ctx, s.session.User(), action, details)
}

func (s *Service) recordAs(ctx context.Context, user, action, details string) {
	if s.rec == nil {
		return
	}
	entry := model.Activity{
		Timestamp: time.Now().UTC(),
		Server:    s.server,
		Username:  user,
		Action:    action,
		Details:   details,
	}
	if err := s.rec.LogAction(ctx, entry); err != nil {
		logging.Warnf("could not record %s: %v", action, err)
	}
}
