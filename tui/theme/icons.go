package theme

import (
	"os"

	"github.com/grovetools/jsonedit/config"
)

// Nerd Font Icons (Private Constants)
const (
	nerdIconSuccess   = "\U000F012C" // md-check
	nerdIconError     = "\uEA87"     // cod-error
	nerdIconWarning   = "\uF071"     // fa-warning
	nerdIconInfo      = "\U000F02FC" // md-information
	nerdIconArrow     = "\U000F0054" // md-arrow_right
	nerdIconBullet    = "\uF444"     // oct-dot_fill
	nerdIconSave      = "\U000F0249" // md-floppy
	nerdIconFilter    = "\U000F18EC" // md-filter_check
	nerdIconExpanded  = "\uEAB4"     // cod-chevron_down
	nerdIconCollapsed = "\uEAB6"     // cod-chevron_right
	nerdIconObject    = "\uEB0F"     // cod-json
	nerdIconArray     = "\uEA8A"     // cod-symbol_array
	nerdIconKey       = "\uEA93"     // cod-symbol_key
	nerdIconYank      = "\U000F018F" // md-content_copy
	nerdIconVisited   = "\uEB36"     // cod-references
	nerdIconEdit      = "\U000F03EB" // md-pencil
)

// ASCII Fallback Icons (Private Constants)
const (
	asciiIconSuccess   = "✓"
	asciiIconError     = "✗"
	asciiIconWarning   = "⚠"
	asciiIconInfo      = "ℹ"
	asciiIconArrow     = "→"
	asciiIconBullet    = "•"
	asciiIconSave      = "[S]" // Save
	asciiIconFilter    = "/"
	asciiIconExpanded  = "▾"
	asciiIconCollapsed = "▸"
	asciiIconObject    = "{}"
	asciiIconArray     = "[]"
	asciiIconKey       = "#"
	asciiIconYank      = "[Y]" // Yank
	asciiIconVisited   = "↺"
	asciiIconEdit      = "✎"
)

// Public Icon Variables
var (
	IconSuccess   string
	IconError     string
	IconWarning   string
	IconInfo      string
	IconArrow     string
	IconBullet    string
	IconSave      string
	IconFilter    string
	IconExpanded  string
	IconCollapsed string
	IconObject    string
	IconArray     string
	IconKey       string
	IconYank      string
	IconVisited   string
	IconEdit      string
)

// init function determines which icon set to use
func init() {
	UseIcons(iconSetName())
}

func iconSetName() string {
	// 1. Check environment variable first
	if set := os.Getenv("JSONEDIT_ICONS"); set != "" {
		return set
	}
	// 2. Check config file
	cfg, err := config.LoadDefault()
	if err == nil && cfg.TUI != nil {
		return cfg.TUI.Icons
	}
	return ""
}

// UseIcons switches the public icon variables to the named set. "ascii"
// selects the fallback glyphs; anything else selects Nerd Font icons.
func UseIcons(set string) {
	if set == "ascii" {
		IconSuccess = asciiIconSuccess
		IconError = asciiIconError
		IconWarning = asciiIconWarning
		IconInfo = asciiIconInfo
		IconArrow = asciiIconArrow
		IconBullet = asciiIconBullet
		IconSave = asciiIconSave
		IconFilter = asciiIconFilter
		IconExpanded = asciiIconExpanded
		IconCollapsed = asciiIconCollapsed
		IconObject = asciiIconObject
		IconArray = asciiIconArray
		IconKey = asciiIconKey
		IconYank = asciiIconYank
		IconVisited = asciiIconVisited
		IconEdit = asciiIconEdit
		return
	}
	IconSuccess = nerdIconSuccess
	IconError = nerdIconError
	IconWarning = nerdIconWarning
	IconInfo = nerdIconInfo
	IconArrow = nerdIconArrow
	IconBullet = nerdIconBullet
	IconSave = nerdIconSave
	IconFilter = nerdIconFilter
	IconExpanded = nerdIconExpanded
	IconCollapsed = nerdIconCollapsed
	IconObject = nerdIconObject
	IconArray = nerdIconArray
	IconKey = nerdIconKey
	IconYank = nerdIconYank
	IconVisited = nerdIconVisited
	IconEdit = nerdIconEdit
}
