package ui

import (
	"bytes"
	"fmt"

	"github.com/blacktop/go-termimg"

	"photosnap/internal/api"
)

// renderArtifact produces the terminal rendering of a generated image.
// Not every terminal supports inline images; when rendering fails the
// result panel falls back to a metadata line.
func renderArtifact(a *api.Artifact) string {
	if a == nil || len(a.Data) == 0 {
		return ""
	}
	img, err := termimg.NewTermImg(bytes.NewReader(a.Data))
	if err != nil {
		return artifactSummary(a)
	}
	rendered, err := img.Render()
	if err != nil || rendered == "" {
		return artifactSummary(a)
	}
	return rendered
}

func artifactSummary(a *api.Artifact) string {
	contentType := a.ContentType
	if contentType == "" {
		contentType = "image"
	}
	return Styles.Muted.Render(
		fmt.Sprintf("[%s, %s, preview not supported by this terminal]",
			contentType, formatSize(len(a.Data))),
	)
}
