package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the control bindings. Printable keys are never bound so they
// always reach the session as typed input.
type keyMap struct {
	Quit    key.Binding
	Start   key.Binding
	Restart key.Binding
	Reset   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "new text"),
		),
		Reset: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "reset"),
		),
	}
}

func (k keyMap) hints(bindings ...key.Binding) []string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		out = append(out, h.Key+" "+h.Desc)
	}
	return out
}
