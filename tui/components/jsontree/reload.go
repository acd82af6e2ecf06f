package jsontree

import (
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/grovetools/jsonedit/config"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/tui/theme"
)

// ConfigChangedMsg tells the editor that a configuration file changed on
// disk. Config is the newly merged configuration, or nil with Err set when it
// could not be loaded.
type ConfigChangedMsg struct {
	File   string
	Config *config.Config
	Err    error
}

// ApplyConfig switches the theme, icons and keybindings to cfg. The document,
// folds and selection are kept. JSONEDIT_THEME still wins over tui.theme.
func (m *Model) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.TUI != nil {
		if os.Getenv("JSONEDIT_THEME") == "" {
			theme.DefaultTheme = theme.New(cfg.TUI.Theme)
		}
		if cfg.TUI.Icons != "" {
			theme.UseIcons(cfg.TUI.Icons)
		}
	}
	m.keys = keymap.Load(cfg)
	m.seq = keymap.NewSequencer(keymap.DefaultSequenceTimeout)
	m.help.Keys = m.keys
	m.help.Theme = theme.DefaultTheme
	m.updateContent()
}

func (m *Model) configChanged(msg ConfigChangedMsg) tea.Cmd {
	name := filepath.Base(msg.File)
	if msg.Err != nil {
		m.log.WithError(msg.Err).WithField("file", msg.File).Warn("Config reload failed")
		return m.setStatus(statusError, "Config reload failed: "+errors.UserMessage(msg.Err))
	}
	m.ApplyConfig(msg.Config)
	m.log.WithField("file", msg.File).Info("Applied configuration change")
	return m.setStatus(statusInfo, "Reloaded "+name)
}
