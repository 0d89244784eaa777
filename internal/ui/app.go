// Package ui implements the photosnap terminal client: a prompt field,
// a generate/upload action row, and a result panel, driven by the
// photosnapd HTTP API.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"photosnap/internal/api"
	"photosnap/internal/artifact"
)

// Mode is the request lifecycle state. Controls are disabled outside
// ModeIdle so a second submission cannot start while one is in flight.
type Mode int

const (
	ModeIdle Mode = iota
	ModeGenerating
	ModeUploading
)

// Focus selects which control receives key input.
type Focus int

const (
	FocusPrompt Focus = iota
	FocusActions
)

// Action is a button in the action row.
type Action int

const (
	ActionGenerate Action = iota
	ActionUpload
	ActionSave
	actionCount
)

// Session holds the artifact produced by the last successful generation.
// Upload is only meaningful while an artifact exists.
type Session struct {
	Artifact *api.Artifact
}

// HasArtifact reports whether a successful generation happened this
// session and has not been cleared by a newer request.
func (s *Session) HasArtifact() bool {
	return s.Artifact != nil && len(s.Artifact.Data) > 0
}

// CurrentPrompt returns the prompt that produced the current artifact.
func (s *Session) CurrentPrompt() string {
	if s.Artifact == nil {
		return ""
	}
	return s.Artifact.Prompt
}

// AppModel is the root model for the photosnap TUI.
type AppModel struct {
	Client *api.Client
	Store  *artifact.Store

	Session Session
	Mode    Mode
	Focus   Focus
	Action  Action

	prompt  textarea.Model
	spinner spinner.Model
	banner  Banner

	loadingText    string
	imageView      string
	uploadURL      string
	savedPath      string
	placeholderIdx int

	width  int
	height int
}

// NewAppModel creates the root model. The store may be nil, in which
// case saving is disabled.
func NewAppModel(client *api.Client, store *artifact.Store) *AppModel {
	ta := textarea.New()
	ta.Placeholder = examplePrompts[0]
	ta.SetHeight(3)
	ta.SetWidth(60)
	ta.ShowLineNumbers = false
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &AppModel{
		Client:  client,
		Store:   store,
		Mode:    ModeIdle,
		Focus:   FocusPrompt,
		prompt:  ta,
		spinner: s,
	}
}

// Init implements tea.Model.
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, rotatePlaceholderCmd())
}

// CanGenerate reports whether the generate control is currently enabled.
func (m *AppModel) CanGenerate() bool {
	return m.Mode == ModeIdle
}

// CanUpload reports whether the upload control is currently enabled.
func (m *AppModel) CanUpload() bool {
	return m.Mode == ModeIdle && m.Session.HasArtifact()
}
