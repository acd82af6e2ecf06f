// Package tui holds the terminal setup shared by the interactive commands.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/grovetools/jsonedit/errors"
)

// InitializeTUI forces a true color profile when CLICOLOR_FORCE=1 or
// COLORTERM=truecolor is set, so recorded sessions and CI runs keep their
// styling. Without those variables lipgloss detects the profile itself.
func InitializeTUI() {
	if os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}
}

// RunOptions tune Run.
type RunOptions struct {
	// InputTTY reads keys from /dev/tty instead of stdin, for documents
	// piped in on stdin.
	InputTTY bool
	// OnStart is called with the program before it runs, for goroutines that
	// feed it messages.
	OnStart func(p *tea.Program)
}

// Run starts m full screen and returns the final model. Stdout must be a
// terminal.
func Run(m tea.Model, opts RunOptions) (tea.Model, error) {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "the editor needs a terminal; use 'jsonedit show' to print a document")
	}
	InitializeTUI()

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.InputTTY {
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	p := tea.NewProgram(m, progOpts...)
	if opts.OnStart != nil {
		opts.OnStart(p)
	}
	return p.Run()
}
