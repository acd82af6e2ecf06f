package keymap

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// SectionInfo is the serializable form of a Section.
type SectionInfo struct {
	Name     string        `json:"name" yaml:"name"`
	Config   string        `json:"config" yaml:"config"` // tui.keybindings.<config>
	Bindings []BindingInfo `json:"bindings" yaml:"bindings"`
}

// BindingInfo is the serializable form of a key.Binding.
type BindingInfo struct {
	Keys        []string `json:"keys" yaml:"keys"`
	Description string   `json:"description" yaml:"description"`
	Enabled     bool     `json:"enabled" yaml:"enabled"`
	// ConfigKey is the name accepted in jsonedit.yml, e.g. yank_all.
	ConfigKey string `json:"config_key" yaml:"config_key"`
}

var sectionConfigNames = map[string]string{
	SectionNavigation: "navigation",
	SectionEdit:       "edit",
	SectionActions:    "actions",
	SectionSearch:     "search",
	SectionFold:       "fold",
	SectionSystem:     "system",
}

// Export converts a keymap into its serializable form. Config keys come from
// the struct fields, matched to section entries by help description.
func Export(km SectionedKeyMap) []SectionInfo {
	names := make(map[string]string)
	eachBinding(reflect.ValueOf(km), func(name string, field reflect.Value) {
		if desc := field.Interface().(key.Binding).Help().Desc; desc != "" {
			names[desc] = name
		}
	})

	var out []SectionInfo
	for _, s := range km.Sections() {
		info := SectionInfo{Name: s.Name, Config: sectionConfigNames[s.Name]}
		for _, b := range s.Bindings {
			desc := b.Help().Desc
			info.Bindings = append(info.Bindings, BindingInfo{
				Keys:        b.Keys(),
				Description: desc,
				Enabled:     b.Enabled(),
				ConfigKey:   names[desc],
			})
		}
		out = append(out, info)
	}
	return out
}
