package ui

// examplePrompts rotate through the prompt field's placeholder to give
// users a feel for what works. Cosmetic only.
var examplePrompts = []string{
	"A cozy cabin in a snowy forest at dusk",
	"A watercolor painting of a lighthouse in a storm",
	"A futuristic city skyline with flying trams",
	"A macro photo of a bee on a sunflower",
	"A jazz band of cats playing in a smoky club",
	"An astronaut planting a garden on the moon",
	"A street market in Marrakech at golden hour",
	"A paper-craft diorama of a coral reef",
}

// rotatePlaceholder advances to the next example prompt. The rotation is
// skipped entirely while the prompt field has input focus so it never
// disturbs active typing.
func (m *AppModel) rotatePlaceholder() {
	if m.prompt.Focused() {
		return
	}
	m.placeholderIdx = (m.placeholderIdx + 1) % len(examplePrompts)
	m.prompt.Placeholder = examplePrompts[m.placeholderIdx]
}
