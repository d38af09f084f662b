// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"

	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/model"
	"github.com/apphub/hubclient/internal/router"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *mainModel) updateLogin(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Register):
		return m.goTo(string(router.Registration))
	case key.Matches(msg, m.keys.Validate):
		return m.goTo(string(router.Validate))
	case key.Matches(msg, m.keys.Submit):
		user, password := m.login.Value(0), m.login.Raw(1)
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := acc.Login(ctx, user, password); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{navigate: string(router.Apps), status: i18n.T("login.success", user)}
		})
	}
	return m.login.Update(msg, m.keys)
}

func (m *mainModel) updateRegistration(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToLogin):
		return m.goTo(string(router.Login))
	case key.Matches(msg, m.keys.ShowTerms):
		return m.goTo(string(router.Terms))
	case key.Matches(msg, m.keys.AcceptTerms):
		m.termsAccepted = !m.termsAccepted
		return nil
	case key.Matches(msg, m.keys.Submit):
		if !m.termsAccepted {
			m.setStatus(i18n.T("registration.accept_terms_first"), true)
			return nil
		}
		form := model.RegistrationForm{
			User:     m.registration.Value(0),
			Password: m.registration.Raw(1),
			Email:    m.registration.Value(2),
		}
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := acc.Register(ctx, form); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{
				navigate: string(router.Validate),
				status:   i18n.T("registration.success", form.Email),
				after: func(m *mainModel) {
					m.registration = nil
					m.termsAccepted = false
				},
			}
		})
	}
	return m.registration.Update(msg, m.keys)
}

func (m mainModel) viewRegistration() string {
	var b strings.Builder
	b.WriteString(m.registration.View())
	box := "[ ] "
	if m.termsAccepted {
		box = "[x] "
	}
	b.WriteString("\n" + box + i18n.T("registration.terms") + "\n")
	if m.termsAccepted {
		b.WriteString(activeButtonStyle.Render(i18n.T("registration.submit")))
	} else {
		b.WriteString(buttonStyle.Inherit(disabledStyle).Render(i18n.T("registration.submit")))
	}
	b.WriteString("\n")
	return b.String()
}

func (m *mainModel) updateValidate(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToLogin):
		return m.goTo(string(router.Login))
	case key.Matches(msg, m.keys.Submit):
		code := m.validate.Value(0)
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := acc.Validate(ctx, code); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{navigate: string(router.Login), status: i18n.T("validate.success")}
		})
	}
	return m.validate.Update(msg, m.keys)
}

func (m *mainModel) updatePassword(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.goTo(string(router.Apps))
	case key.Matches(msg, m.keys.Submit):
		oldPassword, newPassword := m.password.Raw(0), m.password.Raw(1)
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := acc.ChangePassword(ctx, oldPassword, newPassword); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{navigate: string(router.Apps), status: i18n.T("password.changed")}
		})
	}
	return m.password.Update(msg, m.keys)
}
