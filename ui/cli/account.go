// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/router"
	"github.com/spf13/cobra"
)

var errTermsDeclined = errors.New("the terms of use must be accepted to register")
var errAborted = errors.New("aborted")

func newRegisterCmd(st *state) *cobra.Command {
	var form model.RegistrationForm
	var acceptTerms bool
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a hub account",
		Long: `Creates a hub account. The hub sends a validation code to the given
email address; run 'hubclient validate <code>' to activate the account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.Registration.String()); err != nil {
				return err
			}
			var err error
			if form.User, err = st.prompt.valueOrPrompt(form.User, i18n.T("form.username"), false); err != nil {
				return err
			}
			if form.Email, err = st.prompt.valueOrPrompt(form.Email, i18n.T("form.email"), false); err != nil {
				return err
			}
			if form.Password, err = st.prompt.valueOrPrompt(form.Password, i18n.T("form.password"), true); err != nil {
				return err
			}
			if !acceptTerms && !assumeYes {
				st.printf("%s\n\n%s\n\n", i18n.T("terms.title"), i18n.T("terms.body"))
				if !st.prompt.confirm(i18n.T("cli.accept_terms")) {
					return errTermsDeclined
				}
			}
			if err := st.account.Register(cmd.Context(), form); err != nil {
				return err
			}
			st.success(i18n.T("registration.success", form.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&form.User, "user", "", "Account name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Email address the validation code is sent to")
	cmd.Flags().StringVar(&form.Password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().BoolVar(&acceptTerms, "accept-terms", false, "Accept the terms of use without asking")
	return cmd
}

func newValidateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <code>",
		Short: "Activate a registered account with its email code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.Validate.String()); err != nil {
				return err
			}
			if err := st.account.Validate(cmd.Context(), args[0]); err != nil {
				return err
			}
			st.success(i18n.T("validate.success"))
			return nil
		},
	}
}

func newLoginCmd(st *state) *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and keep the session for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.Login.String()); err != nil {
				return err
			}
			var err error
			if user, err = st.prompt.valueOrPrompt(user, i18n.T("form.username"), false); err != nil {
				return err
			}
			if password, err = st.prompt.valueOrPrompt(password, i18n.T("form.password"), true); err != nil {
				return err
			}
			if err := st.account.Login(cmd.Context(), user, password); err != nil {
				return err
			}
			st.success(i18n.T("login.success", user))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Account name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session on the hub and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !st.client.HasCookie() {
				st.printf("%s\n", i18n.T("cli.not_logged_in"))
				return nil
			}
			if err := st.account.Logout(cmd.Context()); err != nil {
				return err
			}
			st.success(i18n.T("status.logged_out"))
			return nil
		},
	}
}

func newWhoamiCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.Apps.String()); err != nil {
				return err
			}
			st.printf("%s\n", i18n.T("header.user", st.session.User()))
			return nil
		},
	}
}

func newChangePasswordCmd(st *state) *cobra.Command {
	var oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change the account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.ChangePassword.String()); err != nil {
				return err
			}
			var err error
			if oldPassword, err = st.prompt.valueOrPrompt(oldPassword, i18n.T("form.old_password"), true); err != nil {
				return err
			}
			if newPassword, err = st.prompt.valueOrPrompt(newPassword, i18n.T("form.new_password"), true); err != nil {
				return err
			}
			if err := st.account.ChangePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			st.success(i18n.T("password.changed"))
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old-password", "", "Current password (prompted when omitted)")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password (prompted when omitted)")
	return cmd
}

func newDeleteAccountCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-account",
		Short: "Delete the account with all of its apps and versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.enter(cmd.Context(), router.Apps.String()); err != nil {
				return err
			}
			if !st.confirm(i18n.T("account.delete_question")) {
				return errAborted
			}
			if err := st.account.DeleteAccount(cmd.Context()); err != nil {
				return err
			}
			st.success(i18n.T("account.deleted"))
			return nil
		},
	}
}
