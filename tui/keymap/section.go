package keymap

import "github.com/charmbracelet/bubbles/key"

// Section names as shown in help and in the exported keymap.
const (
	SectionNavigation = "Navigation"
	SectionEdit       = "Edit"
	SectionActions    = "Actions"
	SectionSearch     = "Search"
	SectionFold       = "Fold"
	SectionSystem     = "System"
)

// Section is a named group of bindings.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by keymaps that group their bindings.
type SectionedKeyMap interface {
	Sections() []Section
}

// Enabled returns the section's enabled bindings.
func (s Section) Enabled() []key.Binding {
	var out []key.Binding
	for _, b := range s.Bindings {
		if b.Enabled() {
			out = append(out, b)
		}
	}
	return out
}
