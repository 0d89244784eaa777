package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model. Each pending request walks
// idle -> loading -> (success | error) -> idle.
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.prompt.SetWidth(min(msg.Width-6, 76))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case GenerateDoneMsg:
		return m.handleGenerateDone(msg)

	case UploadDoneMsg:
		return m.handleUploadDone(msg)

	case SaveDoneMsg:
		m.Mode = ModeIdle
		if msg.Err != nil {
			return m, m.showBanner("Save failed: "+msg.Err.Error(), BannerError)
		}
		m.savedPath = msg.Path
		return m, m.showBanner("Saved to "+msg.Path, BannerSuccess)

	case BannerTimeoutMsg:
		m.banner.AutoHide(msg.Seq)
		return m, nil

	case RotatePlaceholderMsg:
		m.rotatePlaceholder()
		return m, rotatePlaceholderCmd()

	case spinner.TickMsg:
		if m.Mode == ModeIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.banner.Dismiss()
		return m, nil
	case "tab":
		m.toggleFocus()
		return m, nil
	case "enter", "ctrl+enter", "alt+enter":
		if m.Focus == FocusActions && msg.String() == "enter" {
			return m, m.activate(m.Action)
		}
		return m, m.startGenerate()
	case "ctrl+u":
		return m, m.startUpload()
	case "ctrl+s":
		return m, m.startSave()
	}

	if m.Focus == FocusActions {
		switch msg.String() {
		case "left", "h":
			m.Action = (m.Action + actionCount - 1) % actionCount
			return m, nil
		case "right", "l":
			m.Action = (m.Action + 1) % actionCount
			return m, nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *AppModel) toggleFocus() {
	if m.Focus == FocusPrompt {
		m.Focus = FocusActions
		m.prompt.Blur()
		return
	}
	m.Focus = FocusPrompt
	m.prompt.Focus()
}

func (m *AppModel) activate(action Action) tea.Cmd {
	switch action {
	case ActionGenerate:
		return m.startGenerate()
	case ActionUpload:
		return m.startUpload()
	case ActionSave:
		return m.startSave()
	}
	return nil
}

// startGenerate validates the prompt and kicks off the generate request.
// An empty prompt never reaches the network.
func (m *AppModel) startGenerate() tea.Cmd {
	if !m.CanGenerate() {
		return nil
	}
	prompt := strings.TrimSpace(m.prompt.Value())
	if prompt == "" {
		return m.showBanner("Please enter a prompt first.", BannerError)
	}

	m.Mode = ModeGenerating
	m.loadingText = "Generating image..."
	// A new request discards the previous result.
	m.Session.Artifact = nil
	m.imageView = ""
	m.uploadURL = ""
	m.savedPath = ""
	m.banner.Dismiss()

	return tea.Batch(generateCmd(m.Client, prompt), m.spinner.Tick)
}

// startUpload requires an artifact from a prior successful generation;
// without one it shows a validation error and performs no network call.
func (m *AppModel) startUpload() tea.Cmd {
	if m.Mode != ModeIdle {
		return nil
	}
	if !m.Session.HasArtifact() {
		return m.showBanner("Generate an image before uploading.", BannerError)
	}

	m.Mode = ModeUploading
	m.loadingText = "Uploading to Spaces..."
	m.banner.Dismiss()

	return tea.Batch(uploadCmd(m.Client, m.Session.CurrentPrompt()), m.spinner.Tick)
}

func (m *AppModel) startSave() tea.Cmd {
	if m.Mode != ModeIdle || m.Store == nil {
		return nil
	}
	if !m.Session.HasArtifact() {
		return m.showBanner("Generate an image before saving.", BannerError)
	}
	return saveCmd(m.Store, m.Session.Artifact)
}

func (m *AppModel) handleGenerateDone(msg GenerateDoneMsg) (tea.Model, tea.Cmd) {
	m.Mode = ModeIdle
	m.loadingText = ""
	if msg.Err != nil {
		// Upload stays disabled: no valid image exists.
		return m, m.showBanner("Error: "+msg.Err.Error(), BannerError)
	}

	m.Session.Artifact = msg.Artifact
	m.imageView = renderArtifact(msg.Artifact)
	text := fmt.Sprintf("Image generated (%s). ctrl+s saves, ctrl+u uploads.",
		formatSize(len(msg.Artifact.Data)))
	return m, m.showBanner(text, BannerSuccess)
}

func (m *AppModel) handleUploadDone(msg UploadDoneMsg) (tea.Model, tea.Cmd) {
	m.Mode = ModeIdle
	m.loadingText = ""
	if msg.Err != nil {
		return m, m.showBanner("Upload failed: "+msg.Err.Error(), BannerError)
	}
	if msg.Result.Failed() {
		return m, m.showBanner("Upload failed: "+msg.Result.ErrorMessage(), BannerError)
	}

	m.uploadURL = msg.Result.URL
	return m, m.showBanner("Image uploaded to Spaces.", BannerSuccess)
}

func (m *AppModel) showBanner(text string, kind BannerKind) tea.Cmd {
	seq := m.banner.Show(text, kind)
	return bannerTimeoutCmd(seq)
}

func formatSize(n int) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%d KB", n/1024)
}
