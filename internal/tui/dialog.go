// Copyright (c) 2026 Hubclient Team
// Hubclient - software distribution hub client
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/apphub/hubclient/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type dialogResult int

const (
	dialogOpen dialogResult = iota
	dialogYes
	dialogNo
)

// confirmDialog is a two-button yes/no prompt. No is focused first.
type confirmDialog struct {
	title    string
	question string
	cursor   int // 0 for No, 1 for Yes
}

func newConfirmDialog(title, question string) *confirmDialog {
	return &confirmDialog{title: title, question: question}
}

func (d *confirmDialog) Update(msg tea.KeyMsg) dialogResult {
	switch msg.String() {
	case "n", "q", "esc":
		return dialogNo
	case "y":
		return dialogYes
	case "right", "left", "tab", "shift+tab", "h", "l":
		d.cursor = 1 - d.cursor
	case "enter":
		if d.cursor == 1 {
			return dialogYes
		}
		return dialogNo
	}
	return dialogOpen
}

func (d *confirmDialog) View(width, height int) string {
	var b strings.Builder
	b.WriteString(specialStyle.Bold(true).Render(d.title))
	b.WriteString("\n\n")
	b.WriteString(d.question)
	b.WriteString("\n")

	yes, no := buttonStyle, activeButtonStyle
	if d.cursor == 1 {
		yes, no = activeButtonStyle, buttonStyle
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		no.Render(i18n.T("dialog.no")), "  ", yes.Render(i18n.T("dialog.yes")))
	b.WriteString(buttons)
	b.WriteString("\n" + helpStyle.Render("\n"+i18n.T("dialog.help")))

	box := dialogBoxStyle.Render(b.String())
	if width == 0 || height == 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
