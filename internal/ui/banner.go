package ui

// BannerKind selects the banner's styling.
type BannerKind int

const (
	BannerInfo BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is a dismissible message that auto-hides after a fixed
// duration. Seq increments on every Show so a stale timer cannot hide a
// newer message.
type Banner struct {
	Text    string
	Kind    BannerKind
	Visible bool
	Seq     int
}

// Show replaces the current banner and returns the sequence number the
// auto-hide timer must match.
func (b *Banner) Show(text string, kind BannerKind) int {
	b.Text = text
	b.Kind = kind
	b.Visible = true
	b.Seq++
	return b.Seq
}

// AutoHide hides the banner only when the timeout belongs to the
// currently shown message.
func (b *Banner) AutoHide(seq int) {
	if seq == b.Seq {
		b.Visible = false
	}
}

// Dismiss hides the banner immediately.
func (b *Banner) Dismiss() {
	b.Visible = false
}

// View renders the banner, or an empty string while hidden.
func (b *Banner) View() string {
	if !b.Visible {
		return ""
	}
	switch b.Kind {
	case BannerError:
		return Styles.BannerError.Render(b.Text)
	case BannerSuccess:
		return Styles.BannerSuccess.Render(b.Text)
	default:
		return Styles.BannerInfo.Render(b.Text)
	}
}
