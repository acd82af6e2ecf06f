package jsontree

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/jsonedit/value"
)

// kindChoice is one entry of the append picker.
type kindChoice struct {
	binding key.Binding
	kind    value.Kind
}

// kindChoices lists the values a new child can start as, in picker order.
func kindChoices() []kindChoice {
	return []kindChoice{
		{key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "string")), value.String},
		{key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "number")), value.Number},
		{key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "boolean")), value.Boolean},
		{key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "null")), value.Null},
		{key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "array")), value.ArrayKind},
		{key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "object")), value.ObjectKind},
	}
}

// pickKind returns the kind bound to msg, if any.
func pickKind(msg tea.KeyMsg) (value.Kind, bool) {
	for _, c := range kindChoices() {
		if key.Matches(msg, c.binding) {
			return c.kind, true
		}
	}
	return value.Invalid, false
}
