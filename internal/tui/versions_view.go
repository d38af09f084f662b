// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/apphub/hubclient/internal/account"
	"github.com/apphub/hubclient/internal/i18n"
	"github.com/apphub/hubclient/internal/router"
	"github.com/apphub/hubclient/internal/versions"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type versionsModel struct {
	mgr     *versions.Manager
	appName string
	cursor  int

	uploading bool
	input     textinput.Model

	dialog *confirmDialog
}

// openVersions scopes a new manager to the app selected in the session.
func (m *mainModel) openVersions() tea.Cmd {
	snap := m.deps.Session.Snapshot()
	mgr, err := versions.New(m.deps.Hub, snap.SelectedAppID)
	if err != nil {
		return m.goTo(string(router.Apps))
	}
	m.versions = &versionsModel{
		mgr:     mgr,
		appName: snap.SelectedApp,
		input:   newTextInput(field{prompt: i18n.T("versions.path_prompt"), placeholder: "./1.0.0.zip"}),
	}
	return m.listVersions()
}

func (m *mainModel) listVersions() tea.Cmd {
	mgr := m.versions.mgr
	return m.run(func(ctx context.Context) resultMsg {
		return resultMsg{err: mgr.List(ctx), after: func(m *mainModel) { m.versions.clampCursor() }}
	})
}

func (v *versionsModel) clampCursor() {
	n := len(v.mgr.Versions())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (m *mainModel) updateVersions(msg tea.KeyMsg) tea.Cmd {
	v := m.versions
	if v.dialog != nil {
		return m.updateVersionsDialog(msg)
	}
	if v.uploading {
		return m.updateUpload(msg)
	}

	list := v.mgr.Versions()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.goTo(string(router.Apps))
	case key.Matches(msg, m.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if v.cursor < len(list)-1 {
			v.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if v.cursor < len(list) {
			v.mgr.Toggle(list[v.cursor].ID)
		}
	case key.Matches(msg, m.keys.Refresh):
		return m.listVersions()
	case key.Matches(msg, m.keys.Upload):
		v.uploading = true
		v.input.SetValue("")
		v.input.Focus()
	case key.Matches(msg, m.keys.Download):
		ver, ok := v.mgr.Selected()
		if !ok {
			m.setStatus(i18n.T("versions.select_first"), true)
			return nil
		}
		mgr, acc, dir := v.mgr, m.deps.Account, m.deps.Downloads
		return m.run(func(ctx context.Context) resultMsg {
			info, err := mgr.Download(ctx)
			if err != nil {
				return resultMsg{err: err}
			}
			path, err := versions.SaveDownload(dir, info)
			if err != nil {
				return resultMsg{err: err}
			}
			acc.Record(ctx, account.ActionDownload, ver.Name)
			return resultMsg{status: i18n.T("versions.downloaded", path)}
		})
	case key.Matches(msg, m.keys.Delete):
		ver, ok := v.mgr.Selected()
		if !ok || v.mgr.RequestDelete() != nil {
			m.setStatus(i18n.T("versions.select_first"), true)
			return nil
		}
		v.dialog = newConfirmDialog(i18n.T("versions.delete_title"), i18n.T("versions.delete_question", ver.Name))
	case key.Matches(msg, m.keys.Copy):
		ver, ok := v.mgr.Selected()
		if !ok {
			m.setStatus(i18n.T("versions.select_first"), true)
			return nil
		}
		if err := clipboardWrite(ver.Name); err != nil {
			m.setStatus(i18n.T("status.clipboard_failed", err), true)
			return nil
		}
		m.setStatus(i18n.T("status.copied", ver.Name), false)
	}
	return nil
}

func (m *mainModel) updateUpload(msg tea.KeyMsg) tea.Cmd {
	v := m.versions
	switch msg.String() {
	case "esc":
		v.uploading = false
		v.input.Blur()
		return nil
	case "enter":
		path := strings.TrimSpace(v.input.Value())
		mgr, acc := v.mgr, m.deps.Account
		return m.run(func(ctx context.Context) resultMsg {
			fileName, content, err := versions.ReadUpload(path)
			if err != nil {
				return resultMsg{err: err}
			}
			if err := mgr.Upload(ctx, fileName, content); err != nil {
				return resultMsg{err: err, quiet: mgr.InvalidMessage() != ""}
			}
			acc.Record(ctx, account.ActionUploadVersion, fileName)
			return resultMsg{
				status: i18n.T("versions.uploaded", fileName),
				after: func(m *mainModel) {
					m.versions.uploading = false
					m.versions.input.Blur()
					m.versions.clampCursor()
				},
			}
		})
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (m *mainModel) updateVersionsDialog(msg tea.KeyMsg) tea.Cmd {
	v := m.versions
	res := v.dialog.Update(msg)
	if res == dialogOpen {
		return nil
	}
	v.dialog = nil
	if res == dialogNo {
		v.mgr.Cancel()
		return nil
	}
	ver, _ := v.mgr.Selected()
	mgr, acc := v.mgr, m.deps.Account
	return m.run(func(ctx context.Context) resultMsg {
		if err := mgr.Confirm(ctx); err != nil {
			return resultMsg{err: err}
		}
		acc.Record(ctx, account.ActionDeleteVersion, ver.Name)
		return resultMsg{
			status: i18n.T("versions.deleted", ver.Name),
			after:  func(m *mainModel) { m.versions.clampCursor() },
		}
	})
}

func (m mainModel) viewVersions() string {
	v := m.versions
	if v == nil {
		return ""
	}
	if v.dialog != nil {
		return v.dialog.View(m.width, m.height-6)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("versions.title", v.appName)))
	b.WriteString("\n")

	list := v.mgr.Versions()
	if len(list) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("versions.empty")) + "\n")
	}
	sel, hasSel := v.mgr.Selected()
	for i, ver := range list {
		mark := "( )"
		style := itemStyle
		if hasSel && sel.ID == ver.ID {
			mark = "(•)"
			style = selectedItemStyle
		}
		line := fmt.Sprintf("%s %-16s %s", mark, ver.Name, helpStyle.Render(ver.Created()))
		if i == v.cursor {
			line = cursorItemStyle.Render("> ") + style.Render(line)
		} else {
			line = "  " + style.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if v.uploading {
		b.WriteString("\n" + v.input.View() + "\n")
	}
	if msg := v.mgr.InvalidMessage(); msg != "" {
		b.WriteString(errorStyle.Render(msg) + "\n")
	}

	c := v.mgr.Controls()
	var actions []string
	if c.DownloadVersion {
		actions = append(actions, i18n.T("versions.action_download"))
	}
	if c.DeleteVersion {
		actions = append(actions, i18n.T("versions.action_delete"))
	}
	if len(actions) > 0 {
		b.WriteString("\n" + selectedItemStyle.Render(strings.Join(actions, "  ")) + "\n")
	}
	return b.String()
}
