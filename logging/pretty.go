package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonedit/tui/theme"
)

// Pretty prints styled status lines meant for the user, as opposed to the
// structured logs from NewLogger.
type Pretty struct {
	w     io.Writer
	t     *theme.Theme
	label lipgloss.Style
	path  lipgloss.Style
}

// NewPretty writes to stderr.
func NewPretty() *Pretty {
	return NewPrettyTo(os.Stderr)
}

// NewPrettyTo writes to w.
func NewPrettyTo(w io.Writer) *Pretty {
	t := theme.DefaultTheme
	return &Pretty{
		w:     w,
		t:     t,
		label: t.Muted,
		path:  lipgloss.NewStyle().Foreground(t.Colors.Cyan).Italic(true),
	}
}

// Success prints message after a check mark.
func (p *Pretty) Success(message string) {
	fmt.Fprintln(p.w, p.t.Success.Render(theme.IconSuccess+" "+message))
}

// Warn prints message after a warning sign.
func (p *Pretty) Warn(message string) {
	fmt.Fprintln(p.w, p.t.Warning.Render(theme.IconWarning+" "+message))
}

// Error prints message and, when non-nil, err.
func (p *Pretty) Error(message string, err error) {
	if err != nil {
		message += ": " + err.Error()
	}
	fmt.Fprintln(p.w, p.t.Error.Render(theme.IconError+" "+message))
}

// Path prints a labelled file path.
func (p *Pretty) Path(label, path string) {
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(label+":"), p.path.Render(path))
}
