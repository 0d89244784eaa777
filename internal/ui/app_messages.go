package ui

import "photosnap/internal/api"

// GenerateDoneMsg is sent when a generate request finishes, either with
// an artifact or an error.
type GenerateDoneMsg struct {
	Artifact *api.Artifact
	Err      error
}

// UploadDoneMsg is sent when an upload request finishes. Result is the
// classified server response; Err is set only for transport failures.
type UploadDoneMsg struct {
	Result *api.UploadResult
	Err    error
}

// SaveDoneMsg is sent when the current artifact has been written to disk.
type SaveDoneMsg struct {
	Path string
	Err  error
}

// BannerTimeoutMsg hides the banner after its display window. Seq guards
// against a stale timer hiding a newer banner.
type BannerTimeoutMsg struct {
	Seq int
}

// RotatePlaceholderMsg advances the prompt field's example placeholder.
type RotatePlaceholderMsg struct{}
