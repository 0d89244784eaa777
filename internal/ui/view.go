package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m *AppModel) View() string {
	var b strings.Builder

	b.WriteString(Styles.Title.Render("photosnap"))
	b.WriteString("\n\n")
	b.WriteString(Styles.Box.Render(m.prompt.View()))
	b.WriteString("\n")
	b.WriteString(m.actionRow())
	b.WriteString("\n")

	if m.Mode != ModeIdle {
		b.WriteString("\n")
		b.WriteString(Styles.Status.Render(m.spinner.View() + m.loadingText))
		b.WriteString("\n")
	}

	if banner := m.banner.View(); banner != "" {
		b.WriteString("\n")
		b.WriteString(banner)
		b.WriteString("\n")
	}

	if result := m.resultPanel(); result != "" {
		b.WriteString("\n")
		b.WriteString(result)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Styles.Hint.Render("enter: generate  ctrl+u: upload  ctrl+s: save  tab: buttons  esc: dismiss  ctrl+c: quit"))
	return b.String()
}

// actionRow renders the three buttons, dimming the ones that are
// currently disabled.
func (m *AppModel) actionRow() string {
	render := func(action Action, label string, enabled bool) string {
		switch {
		case !enabled:
			return Styles.ButtonDisabled.Render("[ " + label + " ]")
		case m.Focus == FocusActions && m.Action == action:
			return Styles.ButtonActive.Render("[ " + label + " ]")
		default:
			return Styles.Button.Render("[ " + label + " ]")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		render(ActionGenerate, "Generate", m.CanGenerate()),
		render(ActionUpload, "Upload to Spaces", m.CanUpload()),
		render(ActionSave, "Save", m.Mode == ModeIdle && m.Session.HasArtifact() && m.Store != nil),
	)
}

func (m *AppModel) resultPanel() string {
	if m.Mode != ModeIdle || !m.Session.HasArtifact() {
		return ""
	}

	var lines []string
	if m.imageView != "" {
		lines = append(lines, m.imageView)
	}
	lines = append(lines, Styles.Muted.Render("Prompt: "+m.Session.CurrentPrompt()))
	lines = append(lines, Styles.Muted.Render("File: "+m.Session.Artifact.Filename()))
	if m.savedPath != "" {
		lines = append(lines, Styles.Muted.Render("Saved: "+m.savedPath))
	}
	if m.uploadURL != "" {
		lines = append(lines, Styles.Link.Render(m.uploadURL))
	}
	return Styles.BoxMuted.Render(strings.Join(lines, "\n"))
}
