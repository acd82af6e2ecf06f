// Package theme holds the color palettes and lipgloss styles shared by the
// editor, the show command and the CLI help.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/jsonedit/config"
)

const defaultThemeName = "kanagawa"

// Colors is a palette. Entries may be adaptive or fixed ANSI colors.
type Colors struct {
	Green, Yellow, Red, Orange   lipgloss.TerminalColor
	Cyan, Blue, Violet, Pink     lipgloss.TerminalColor
	Text, MutedText, InverseText lipgloss.TerminalColor
	Border, SelectedBackground   lipgloss.TerminalColor
}

// Theme holds the styles used across jsonedit.
type Theme struct {
	Name   string
	Colors Colors

	Header lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style

	DetailsBox lipgloss.Style

	// Document tokens
	Key     lipgloss.Style // object keys
	Index   lipgloss.Style // array indices
	String  lipgloss.Style
	Number  lipgloss.Style
	Boolean lipgloss.Style
	Null    lipgloss.Style
	Bracket lipgloss.Style // container summaries such as {3} and [2]
	Visited lipgloss.Style // back-edges to an ancestor container
	Match   lipgloss.Style // search hits
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var palettes = map[string]func() Colors{
	"kanagawa": func() Colors {
		return Colors{
			Green:              adaptive("#4E7C5A", "#98BB6C"),
			Yellow:             adaptive("#A68A64", "#FF9E3B"),
			Red:                adaptive("#C34043", "#FF5D62"),
			Orange:             adaptive("#CC6B4E", "#FFA066"),
			Cyan:               adaptive("#5B8BBE", "#7E9CD8"),
			Blue:               adaptive("#4F7CAC", "#7FB4CA"),
			Violet:             adaptive("#674D7A", "#957FB8"),
			Pink:               adaptive("#B35C74", "#D27E99"),
			Text:               adaptive("#2B2F42", "#DCD7BA"),
			MutedText:          adaptive("#6C7086", "#727169"),
			InverseText:        adaptive("#E6E9EF", "#1D1C19"),
			Border:             adaptive("#B5BDC5", "#363646"),
			SelectedBackground: adaptive("#E2E6F3", "#223249"),
		}
	},
	"gruvbox": func() Colors {
		return Colors{
			Green:              adaptive("#98971A", "#B8BB26"),
			Yellow:             adaptive("#D79921", "#FABD2F"),
			Red:                adaptive("#CC241D", "#FB4934"),
			Orange:             adaptive("#D65D0E", "#FE8019"),
			Cyan:               adaptive("#458588", "#83A598"),
			Blue:               adaptive("#076678", "#458588"),
			Violet:             adaptive("#8F3F71", "#B16286"),
			Pink:               adaptive("#B57679", "#D3869B"),
			Text:               adaptive("#3C3836", "#EBDBB2"),
			MutedText:          adaptive("#928374", "#BDAE93"),
			InverseText:        adaptive("#F9F5D7", "#1D2021"),
			Border:             adaptive("#D5C4A1", "#504945"),
			SelectedBackground: adaptive("#F2E5BC", "#32302F"),
		}
	},
	// ANSI indices, so the terminal's own scheme decides the shades.
	"terminal": func() Colors {
		return Colors{
			Green:              lipgloss.Color("2"),
			Yellow:             lipgloss.Color("3"),
			Red:                lipgloss.Color("1"),
			Orange:             lipgloss.Color("208"),
			Cyan:               lipgloss.Color("6"),
			Blue:               lipgloss.Color("4"),
			Violet:             lipgloss.Color("5"),
			Pink:               lipgloss.Color("13"),
			Text:               lipgloss.Color("7"),
			MutedText:          lipgloss.Color("8"),
			InverseText:        lipgloss.Color("0"),
			Border:             lipgloss.Color("8"),
			SelectedBackground: lipgloss.Color("8"),
		}
	},
}

var aliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"kanagawa-wave":   "kanagawa",
	"gruvbox-dark":    "gruvbox",
	"gruvbox-light":   "gruvbox",
	"ansi":            "terminal",
}

// DefaultTheme is the theme selected by JSONEDIT_THEME or the tui.theme setting.
var DefaultTheme = New(selectedName())

// Names lists the palette names in display order.
func Names() []string {
	return []string{"kanagawa", "gruvbox", "terminal"}
}

// New builds the theme for a palette name. Unknown names get the default
// palette.
func New(name string) *Theme {
	name = resolveName(name)
	c := palettes[name]()
	return &Theme{
		Name:   name,
		Colors: c,

		Header: lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1),

		Success: lipgloss.NewStyle().Foreground(c.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(c.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(c.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(c.Cyan).Bold(true),

		Muted:     lipgloss.NewStyle().Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(c.Violet).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(c.Orange).Bold(true),
		Selected:  lipgloss.NewStyle().Background(c.SelectedBackground).Foreground(c.Text),

		DetailsBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(c.Violet).
			Padding(0, 1),

		Key:     lipgloss.NewStyle().Foreground(c.Blue),
		Index:   lipgloss.NewStyle().Foreground(c.MutedText),
		String:  lipgloss.NewStyle().Foreground(c.Green),
		Number:  lipgloss.NewStyle().Foreground(c.Orange),
		Boolean: lipgloss.NewStyle().Foreground(c.Violet),
		Null:    lipgloss.NewStyle().Foreground(c.MutedText).Italic(true),
		Bracket: lipgloss.NewStyle().Foreground(c.MutedText),
		Visited: lipgloss.NewStyle().Foreground(c.Pink).Italic(true),
		Match:   lipgloss.NewStyle().Background(c.Yellow).Foreground(c.InverseText),
	}
}

// resolveName normalizes spacing and case, then follows aliases.
func resolveName(name string) string {
	name = normalizeName(name)
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if _, ok := palettes[name]; !ok {
		return defaultThemeName
	}
	return name
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(name)
}

func selectedName() string {
	if name := os.Getenv("JSONEDIT_THEME"); name != "" {
		return name
	}
	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil || cfg.TUI == nil {
		return defaultThemeName
	}
	return cfg.TUI.Theme
}
