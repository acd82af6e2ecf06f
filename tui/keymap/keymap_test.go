package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jsonedit/config"
)

func TestDefaultVim(t *testing.T) {
	km := DefaultVim()

	assert.Equal(t, []string{"k", "up"}, km.Up.Keys())
	assert.Equal(t, []string{"gg", "home"}, km.Top.Keys())
	assert.Equal(t, []string{"e"}, km.Edit.Keys())
	assert.Equal(t, []string{"r"}, km.Rename.Keys())
	assert.Equal(t, []string{"a"}, km.Append.Keys())
	assert.Equal(t, []string{"y"}, km.Yank.Keys())
	assert.Equal(t, []string{"Y"}, km.YankAll.Keys())
	assert.Equal(t, "edit value", km.Edit.Help().Desc)
}

func TestDefaultArrows(t *testing.T) {
	km := DefaultArrows()

	assert.Equal(t, []string{"up"}, km.Up.Keys())
	assert.Equal(t, []string{"home"}, km.Top.Keys())
	assert.Equal(t, []string{"ctrl+s"}, km.Save.Keys())
	// Edit bindings not redefined by the preset come from vim.
	assert.Equal(t, []string{"r"}, km.Rename.Keys())
}

func TestLoad_NilConfig(t *testing.T) {
	km := Load(nil)
	assert.Equal(t, DefaultVim().Up.Keys(), km.Up.Keys())
}

func TestLoad_PresetSelection(t *testing.T) {
	tests := []struct {
		preset string
		upKey  string
	}{
		{"vim", "k"},
		{"arrows", "up"},
		{"unknown", "k"},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := &config.Config{TUI: &config.TUIConfig{Preset: tt.preset}}
			km := Load(cfg)
			require.NotEmpty(t, km.Up.Keys())
			assert.Equal(t, tt.upKey, km.Up.Keys()[0])
		})
	}
}

func TestLoad_SectionOverrides(t *testing.T) {
	cfg := &config.Config{
		TUI: &config.TUIConfig{
			Keybindings: &config.KeybindingsConfig{
				Navigation: config.KeybindingSectionConfig{
					"up":     {"i"},
					"parent": {"u"},
				},
				Edit: config.KeybindingSectionConfig{
					"append": {"o", "A"},
				},
				Fold: config.KeybindingSectionConfig{
					"fold_toggle": {"enter"},
				},
				System: config.KeybindingSectionConfig{
					"quit": {"Q"},
				},
			},
		},
	}

	km := Load(cfg)

	assert.Equal(t, []string{"i"}, km.Up.Keys())
	assert.Equal(t, []string{"u"}, km.Parent.Keys())
	assert.Equal(t, []string{"o", "A"}, km.Append.Keys())
	assert.Equal(t, "append child", km.Append.Help().Desc)
	assert.Equal(t, []string{"enter"}, km.FoldToggle.Keys())
	assert.Equal(t, []string{"Q"}, km.Quit.Keys())
	assert.Equal(t, DefaultVim().Down.Keys(), km.Down.Keys())
}

func TestSections(t *testing.T) {
	km := NewBase()
	sections := km.Sections()

	names := make([]string, 0, len(sections))
	for _, s := range sections {
		names = append(names, s.Name)
		assert.NotEmpty(t, s.Enabled(), "section %s should have enabled bindings", s.Name)
	}
	assert.Equal(t, []string{"Navigation", "Edit", "Actions", "Search", "Fold", "System"}, names)
}

func TestFullHelp(t *testing.T) {
	km := NewBase()
	assert.Len(t, km.FullHelp(), len(km.Sections()))
}

func TestShortHelp(t *testing.T) {
	km := NewBase()
	short := km.ShortHelp()
	require.NotEmpty(t, short)
	assert.Equal(t, km.Quit.Keys(), short[len(short)-1].Keys())
}

func TestSequences(t *testing.T) {
	km := NewBase()
	for _, b := range km.Sequences() {
		assert.NotEmpty(t, b.Keys())
	}
	assert.True(t, IsPrefixOfAny("z", km.Sequences()...))
	assert.True(t, IsPrefixOfAny("g", km.Sequences()...))
}

func TestExport(t *testing.T) {
	sections := Export(NewBase())
	require.Len(t, sections, 6)

	edit := sections[1]
	assert.Equal(t, "Edit", edit.Name)
	assert.Equal(t, "edit", edit.Config)
	require.NotEmpty(t, edit.Bindings)
	assert.Equal(t, "edit", edit.Bindings[0].ConfigKey)

	actions := sections[2]
	assert.Equal(t, "yank_all", actions.Bindings[1].ConfigKey)
	assert.Equal(t, []string{"Y"}, actions.Bindings[1].Keys)
}
