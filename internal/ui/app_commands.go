package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"photosnap/internal/api"
	"photosnap/internal/artifact"
)

const (
	bannerDuration      = 5 * time.Second
	placeholderInterval = 5 * time.Second
)

// generateCmd runs the generate request off the UI loop.
func generateCmd(client *api.Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		art, err := client.Generate(context.Background(), prompt)
		return GenerateDoneMsg{Artifact: art, Err: err}
	}
}

// uploadCmd runs the upload request off the UI loop.
func uploadCmd(client *api.Client, prompt string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Upload(context.Background(), prompt)
		return UploadDoneMsg{Result: result, Err: err}
	}
}

// saveCmd writes the artifact to the local image store.
func saveCmd(store *artifact.Store, art *api.Artifact) tea.Cmd {
	return func() tea.Msg {
		path, err := store.Save(art)
		return SaveDoneMsg{Path: path, Err: err}
	}
}

// bannerTimeoutCmd schedules the auto-hide for the banner shown at seq.
func bannerTimeoutCmd(seq int) tea.Cmd {
	return tea.Tick(bannerDuration, func(time.Time) tea.Msg {
		return BannerTimeoutMsg{Seq: seq}
	})
}

// rotatePlaceholderCmd schedules the next placeholder rotation.
func rotatePlaceholderCmd() tea.Cmd {
	return tea.Tick(placeholderInterval, func(time.Time) tea.Msg {
		return RotatePlaceholderMsg{}
	})
}
