package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// KeybindingSectionConfig defines keybindings for a specific section (navigation, edit, etc.)
// Keys are action names (e.g., "up", "rename", "quit"), values are lists of key combinations.
type KeybindingSectionConfig map[string][]string

// KeybindingsConfig defines the structure for custom keybindings.
type KeybindingsConfig struct {
	Navigation KeybindingSectionConfig `yaml:"navigation,omitempty" toml:"navigation,omitempty" jsonschema:"description=Navigation keybindings (up, down, left, right, page_up, page_down, top, bottom, parent)"`
	Edit       KeybindingSectionConfig `yaml:"edit,omitempty" toml:"edit,omitempty" jsonschema:"description=Edit keybindings (edit, rename, append, save)"`
	Actions    KeybindingSectionConfig `yaml:"actions,omitempty" toml:"actions,omitempty" jsonschema:"description=Action keybindings (yank, yank_all, confirm, cancel)"`
	Search     KeybindingSectionConfig `yaml:"search,omitempty" toml:"search,omitempty" jsonschema:"description=Search keybindings (search, search_next, search_prev, clear_search)"`
	Fold       KeybindingSectionConfig `yaml:"fold,omitempty" toml:"fold,omitempty" jsonschema:"description=Fold keybindings (fold_toggle, fold_open, fold_close, fold_open_all, fold_close_all)"`
	System     KeybindingSectionConfig `yaml:"system,omitempty" toml:"system,omitempty" jsonschema:"description=System keybindings (quit, help)"`
}

// Sections returns the configured sections keyed by section name.
func (k *KeybindingsConfig) Sections() map[string]KeybindingSectionConfig {
	if k == nil {
		return nil
	}
	return map[string]KeybindingSectionConfig{
		"navigation": k.Navigation,
		"edit":       k.Edit,
		"actions":    k.Actions,
		"search":     k.Search,
		"fold":       k.Fold,
		"system":     k.System,
	}
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	Theme       string             `yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Color theme for the editor,enum=kanagawa,enum=gruvbox,enum=terminal"`
	Preset      string             `yaml:"preset,omitempty" toml:"preset,omitempty" jsonschema:"description=Keybinding preset: vim (default) or arrows,enum=vim,enum=arrows,default=vim"`
	Icons       string             `yaml:"icons,omitempty" toml:"icons,omitempty" jsonschema:"description=Icon set: nerd (default) or ascii,enum=nerd,enum=ascii"`
	Keybindings *KeybindingsConfig `yaml:"keybindings,omitempty" toml:"keybindings,omitempty" jsonschema:"description=Custom keybinding overrides"`
}

// EditorConfig controls how edits are applied and shown.
type EditorConfig struct {
	AppendKey   string `yaml:"append_key,omitempty" toml:"append_key,omitempty" jsonschema:"description=Key used when appending a child to an object (default: key)"`
	Indent      int    `yaml:"indent,omitempty" toml:"indent,omitempty" jsonschema:"description=Indentation width for saved and printed documents (default: 2),minimum=0,maximum=8"`
	ExpandDepth int    `yaml:"expand_depth,omitempty" toml:"expand_depth,omitempty" jsonschema:"description=Containers up to this depth start expanded (default: 2),minimum=0"`
	ConfirmQuit *bool  `yaml:"confirm_quit,omitempty" toml:"confirm_quit,omitempty" jsonschema:"description=Ask before quitting with unsaved edits (default: true)"`
}

// Config represents the jsonedit.yml configuration
type Config struct {
	Version string        `yaml:"version,omitempty" toml:"version,omitempty" jsonschema:"description=Configuration version (e.g. 1.0)"`
	TUI     *TUIConfig    `yaml:"tui,omitempty" toml:"tui,omitempty" jsonschema:"description=TUI appearance and keybindings"`
	Editor  *EditorConfig `yaml:"editor,omitempty" toml:"editor,omitempty" jsonschema:"description=Editing behavior"`

	// Extensions captures all other top-level keys, e.g. logging.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	if c.TUI.Preset == "" {
		c.TUI.Preset = "vim"
	}
	if c.Editor == nil {
		c.Editor = &EditorConfig{}
	}
	if c.Editor.AppendKey == "" {
		c.Editor.AppendKey = "key"
	}
	if c.Editor.Indent == 0 {
		c.Editor.Indent = 2
	}
	if c.Editor.ExpandDepth == 0 {
		c.Editor.ExpandDepth = 2
	}
	if c.Editor.ConfirmQuit == nil {
		trueVal := true
		c.Editor.ConfirmQuit = &trueVal
	}
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded jsonedit.yml into the provided target struct. The target must be a pointer.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// Missing sections leave the target zero-valued.
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// ConfigSource identifies the origin of a configuration value.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
)

// OverrideSource holds a raw configuration from an override file and its path.
type OverrideSource struct {
	Path   string
	Config *Config
}

// LayeredConfig holds the raw configuration from each source file,
// as well as the final merged configuration, for analysis purposes.
type LayeredConfig struct {
	Default   *Config                 // Config with only default values applied.
	Global    *Config                 // Raw config from the global file.
	Project   *Config                 // Raw config from the project file.
	Overrides []OverrideSource        // Raw configs from override files, in order of application.
	Final     *Config                 // The fully merged and validated config.
	FilePaths map[ConfigSource]string // Maps sources to their file paths.
}
