package ui

import "testing"

func TestPlaceholder_SkippedWhileFocused(t *testing.T) {
	m := testModel()
	m.prompt.SetValue("user is typing")
	before := m.prompt.Placeholder

	m.Update(RotatePlaceholderMsg{})

	if m.prompt.Placeholder != before {
		t.Error("rotation must be skipped while the prompt field has focus")
	}
	if m.prompt.Value() != "user is typing" {
		t.Error("rotation must never touch user input")
	}
}

func TestPlaceholder_RotatesWhileBlurred(t *testing.T) {
	m := testModel()
	m.Update(keyMsg("tab")) // focus the action row

	before := m.prompt.Placeholder
	m.Update(RotatePlaceholderMsg{})

	if m.prompt.Placeholder == before {
		t.Error("placeholder must advance while the field is not focused")
	}
}

func TestPlaceholder_WrapsAround(t *testing.T) {
	m := testModel()
	m.prompt.Blur()

	seen := map[string]bool{}
	for range len(examplePrompts) {
		m.rotatePlaceholder()
		seen[m.prompt.Placeholder] = true
	}
	if len(seen) != len(examplePrompts) {
		t.Errorf("expected all %d examples to appear, saw %d", len(examplePrompts), len(seen))
	}

	m.rotatePlaceholder()
	if m.prompt.Placeholder != examplePrompts[1] {
		t.Errorf("expected wrap-around to %q, got %q", examplePrompts[1], m.prompt.Placeholder)
	}
}

func TestPlaceholder_ReschedulesItself(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(RotatePlaceholderMsg{})
	if cmd == nil {
		t.Error("rotation must schedule the next tick")
	}
}
