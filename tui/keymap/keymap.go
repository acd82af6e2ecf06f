package keymap

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonedit/config"
)

// Base contains every keybinding the document editor understands.
// Field names double as config keys: PageUp is configured as page_up.
type Base struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding // collapse, or move to parent when already collapsed
	Right    key.Binding // expand
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding // gg sequence
	Bottom   key.Binding
	Parent   key.Binding

	// Edit
	Edit   key.Binding
	Rename key.Binding
	Append key.Binding
	Save   key.Binding

	// Actions
	Yank    key.Binding
	YankAll key.Binding
	Confirm key.Binding
	Cancel  key.Binding

	// Search
	Search      key.Binding
	SearchNext  key.Binding
	SearchPrev  key.Binding
	ClearSearch key.Binding

	// Fold
	FoldToggle   key.Binding // za
	FoldOpen     key.Binding // zo
	FoldClose    key.Binding // zc
	FoldOpenAll  key.Binding // zR
	FoldCloseAll key.Binding // zM

	// System
	Help key.Binding
	Quit key.Binding
}

// bind builds a binding whose help shows helpKey and desc.
func bind(helpKey, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// NewBase returns the vim preset.
func NewBase() Base {
	return DefaultVim()
}

// DefaultVim is the default preset.
func DefaultVim() Base {
	return Base{
		Up:       bind("k/up", "up", "k", "up"),
		Down:     bind("j/down", "down", "j", "down"),
		Left:     bind("h/left", "collapse", "h", "left"),
		Right:    bind("l/right", "expand", "l", "right"),
		PageUp:   bind("C-u", "page up", "ctrl+u", "pgup"),
		PageDown: bind("C-d", "page down", "ctrl+d", "pgdown"),
		Top:      bind("gg", "top", "gg", "home"),
		Bottom:   bind("G", "bottom", "G", "end"),
		Parent:   bind("p", "parent", "p"),

		Edit:   bind("e", "edit value", "e"),
		Rename: bind("r", "rename key", "r"),
		Append: bind("a", "append child", "a"),
		Save:   bind("w", "save", "w", "ctrl+s"),

		Yank:    bind("y", "yank node", "y"),
		YankAll: bind("Y", "yank document", "Y"),
		Confirm: bind("enter", "confirm", "enter"),
		Cancel:  bind("esc", "cancel", "esc", "ctrl+g"),

		Search:      bind("/", "search", "/"),
		SearchNext:  bind("n", "next match", "n"),
		SearchPrev:  bind("N", "prev match", "N"),
		ClearSearch: bind("C-l", "clear search", "ctrl+l"),

		FoldToggle:   bind("za/space", "toggle fold", "za", " "),
		FoldOpen:     bind("zo", "open fold", "zo"),
		FoldClose:    bind("zc", "close fold", "zc"),
		FoldOpenAll:  bind("zR", "open all", "zR"),
		FoldCloseAll: bind("zM", "close all", "zM"),

		Help: bind("?", "help", "?"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

// DefaultArrows swaps the letter motions for arrows, function keys and
// ctrl chords; edit letters keep working.
func DefaultArrows() Base {
	base := DefaultVim()

	base.Up = bind("up", "up", "up")
	base.Down = bind("down", "down", "down")
	base.Left = bind("left", "collapse", "left")
	base.Right = bind("right", "expand", "right")
	base.PageUp = bind("pgup", "page up", "pgup")
	base.PageDown = bind("pgdown", "page down", "pgdown")
	base.Top = bind("home", "top", "home")
	base.Bottom = bind("end", "bottom", "end")
	base.Parent = bind("backspace", "parent", "backspace")

	base.Edit = bind("f2", "edit value", "f2", "e")
	base.Save = bind("C-s", "save", "ctrl+s")
	base.Search = bind("C-f", "search", "ctrl+f", "/")
	base.SearchNext = bind("f3", "next match", "f3", "n")
	base.SearchPrev = bind("S-f3", "prev match", "shift+f3", "N")

	base.FoldToggle = bind("space", "toggle fold", " ", "tab")
	base.FoldOpen = bind("S-right", "open fold", "shift+right")
	base.FoldClose = bind("S-left", "close fold", "shift+left")
	base.FoldOpenAll = bind("+", "open all", "+")
	base.FoldCloseAll = bind("-", "close all", "-")

	return base
}

// Load creates a Base keymap from configuration: the selected preset first,
// then the per-section overrides from tui.keybindings.
func Load(cfg *config.Config) Base {
	preset := "vim"
	if cfg != nil && cfg.TUI != nil && cfg.TUI.Preset != "" {
		preset = cfg.TUI.Preset
	}

	var base Base
	switch preset {
	case "arrows":
		base = DefaultArrows()
	default:
		base = DefaultVim()
	}

	if cfg == nil || cfg.TUI == nil || cfg.TUI.Keybindings == nil {
		return base
	}

	for _, section := range cfg.TUI.Keybindings.Sections() {
		ApplyOverrides(&base, section)
	}
	return base
}

// ShortHelp returns a slice of key bindings for the short help view
func (k Base) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Rename, k.Append, k.Save, k.Search, k.Help, k.Quit}
}

// FullHelp returns the sections as columns for bubbles/help.
func (k Base) FullHelp() [][]key.Binding {
	sections := k.Sections()
	columns := make([][]key.Binding, 0, len(sections))
	for _, s := range sections {
		columns = append(columns, s.Bindings)
	}
	return columns
}

// Sections returns all bindings grouped for the full help view.
func (k Base) Sections() []Section {
	return []Section{
		{SectionNavigation, []key.Binding{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Parent}},
		{SectionEdit, []key.Binding{k.Edit, k.Rename, k.Append, k.Save}},
		{SectionActions, []key.Binding{k.Yank, k.YankAll, k.Confirm, k.Cancel}},
		{SectionSearch, []key.Binding{k.Search, k.SearchNext, k.SearchPrev, k.ClearSearch}},
		{SectionFold, []key.Binding{k.FoldToggle, k.FoldOpen, k.FoldClose, k.FoldOpenAll, k.FoldCloseAll}},
		{SectionSystem, []key.Binding{k.Help, k.Quit}},
	}
}

// Sequences returns the bindings that may span more than one key press,
// in the order the editor dispatches them.
func (k Base) Sequences() []key.Binding {
	return []key.Binding{k.Top, k.FoldToggle, k.FoldOpen, k.FoldClose, k.FoldOpenAll, k.FoldCloseAll}
}
