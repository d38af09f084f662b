// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/apps"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/router"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

type appsModel struct {
	mgr    *apps.Manager
	cursor int

	creating bool
	input    textinput.Model

	// dialog is open for an app delete, or for the account when
	// deletingAccount is set.
	dialog          *confirmDialog
	deletingAccount bool
}

func newAppsModel(mgr *apps.Manager) *appsModel {
	return &appsModel{mgr: mgr, input: newTextInput(field{prompt: i18n.T("apps.name_prompt"), placeholder: "gitea"})}
}

func (m *mainModel) refreshApps() tea.Cmd {
	mgr := m.apps.mgr
	return m.run(func(ctx context.Context) resultMsg {
		return resultMsg{err: mgr.Refresh(ctx), after: func(m *mainModel) { m.apps.clampCursor() }}
	})
}

func (a *appsModel) clampCursor() {
	n := len(a.mgr.Apps())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (m *mainModel) updateApps(msg tea.KeyMsg) tea.Cmd {
	a := m.apps
	if a.dialog != nil {
		return m.updateAppsDialog(msg)
	}
	if a.creating {
		return m.updateAppCreate(msg)
	}

	list := a.mgr.Apps()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if a.cursor < len(list)-1 {
			a.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if a.cursor < len(list) {
			a.mgr.Toggle(list[a.cursor].ID)
		}
	case key.Matches(msg, m.keys.Open):
		if !a.mgr.Controls().EditVersions {
			m.setStatus(i18n.T("apps.select_first"), true)
			return nil
		}
		return m.goTo(string(router.Versions))
	case key.Matches(msg, m.keys.New):
		a.creating = true
		a.input.SetValue("")
		a.input.Focus()
	case key.Matches(msg, m.keys.Delete):
		app, ok := a.mgr.Selected()
		if !ok || a.mgr.RequestDelete() != nil {
			m.setStatus(i18n.T("apps.select_first"), true)
			return nil
		}
		a.dialog = newConfirmDialog(i18n.T("apps.delete_title"), i18n.T("apps.delete_question", app.Name))
	case key.Matches(msg, m.keys.Copy):
		app, ok := a.mgr.Selected()
		if !ok {
			m.setStatus(i18n.T("apps.select_first"), true)
			return nil
		}
		if err := clipboardWrite(app.ID); err != nil {
			m.setStatus(i18n.T("status.clipboard_failed", err), true)
			return nil
		}
		m.setStatus(i18n.T("status.copied", app.ID), false)
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshApps()
	case key.Matches(msg, m.keys.Password):
		return m.goTo(string(router.ChangePassword))
	case key.Matches(msg, m.keys.Logout):
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			// the session is reset even if the hub could not be told
			_ = acc.Logout(ctx)
			return resultMsg{navigate: string(router.Login), status: i18n.T("status.logged_out")}
		})
	case key.Matches(msg, m.keys.DeleteAccount):
		a.deletingAccount = true
		a.dialog = newConfirmDialog(i18n.T("account.delete_title"), i18n.T("account.delete_question"))
	}
	return nil
}

func (m *mainModel) updateAppCreate(msg tea.KeyMsg) tea.Cmd {
	a := m.apps
	switch msg.String() {
	case "esc":
		a.creating = false
		a.input.Blur()
		return nil
	case "enter":
		name := strings.TrimSpace(a.input.Value())
		mgr, acc := a.mgr, m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := mgr.Create(ctx, name); err != nil {
				return resultMsg{err: err, quiet: mgr.InvalidMessage() != ""}
			}
			acc.Record(ctx, account.ActionCreateApp, name)
			return resultMsg{
				status: i18n.T("apps.created", name),
				after: func(m *mainModel) {
					m.apps.creating = false
					m.apps.input.Blur()
				},
			}
		})
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (m *mainModel) updateAppsDialog(msg tea.KeyMsg) tea.Cmd {
	a := m.apps
	res := a.dialog.Update(msg)
	if res == dialogOpen {
		return nil
	}
	forAccount := a.deletingAccount
	a.dialog, a.deletingAccount = nil, false

	if forAccount {
		if res == dialogNo {
			return nil
		}
		acc := m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			if err := acc.DeleteAccount(ctx); err != nil {
				return resultMsg{err: err}
			}
			return resultMsg{navigate: string(router.Login), status: i18n.T("account.deleted")}
		})
	}

	if res == dialogNo {
		a.mgr.Cancel()
		return nil
	}
	app, _ := a.mgr.Selected()
	mgr, acc := a.mgr, m.deps.Account
	return m.run(func(ctx context.Context) resultMsg {
		if err := mgr.Confirm(ctx); err != nil {
			return resultMsg{err: err}
		}
		acc.Record(ctx, account.ActionDeleteApp, app.Name)
		return resultMsg{
			status: i18n.T("apps.deleted", app.Name),
			after:  func(m *mainModel) { m.apps.clampCursor() },
		}
	})
}

func (m mainModel) viewApps() string {
	a := m.apps
	if a.dialog != nil {
		return a.dialog.View(m.width, m.height-6)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("apps.title")))
	b.WriteString("\n")

	list := a.mgr.Apps()
	if len(list) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("apps.empty")) + "\n")
	}
	sel, hasSel := a.mgr.Selected()
	for i, app := range list {
		mark := "( )"
		style := itemStyle
		if hasSel && sel.ID == app.ID {
			mark = "(•)"
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s %-24s %s", mark, app.Name, helpStyle.Render(app.ID))
		if i == a.cursor {
			line = cursorItemStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if a.creating {
		b.WriteString("\n" + a.input.View() + "\n")
		if msg := a.mgr.InvalidMessage(); msg != "" {
			b.WriteString(errorStyle.Render(msg) + "\n")
		}
	}

	c := a.mgr.Controls()
	var actions []string
	if c.DeleteApp {
		actions = append(actions, i18n.T("apps.action_delete"))
	}
	if c.EditVersions {
		actions = append(actions, i18n.T("apps.action_versions"))
	}
	if len(actions) > 0 {
		b.WriteString("\n" + selectedItemStyle.Render(strings.Join(actions, "  ")) + "\n")
	}
	return b.String()
}
