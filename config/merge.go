package config

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}

	result.TUI = mergeTUI(base.TUI, override.TUI)
	result.Editor = mergeEditor(base.Editor, override.Editor)

	// Merge extensions
	if override.Extensions != nil {
		merged := make(map[string]interface{}, len(base.Extensions)+len(override.Extensions))
		for key, value := range base.Extensions {
			merged[key] = value
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := merged[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						merged[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			merged[key] = value
		}
		result.Extensions = merged
	}

	return &result
}

func mergeTUI(base, override *TUIConfig) *TUIConfig {
	if override == nil {
		return base
	}
	if base == nil {
		copied := *override
		return &copied
	}
	result := *base
	if override.Theme != "" {
		result.Theme = override.Theme
	}
	if override.Preset != "" {
		result.Preset = override.Preset
	}
	if override.Icons != "" {
		result.Icons = override.Icons
	}
	result.Keybindings = mergeKeybindings(base.Keybindings, override.Keybindings)
	return &result
}

func mergeKeybindings(base, override *KeybindingsConfig) *KeybindingsConfig {
	if override == nil {
		return base
	}
	if base == nil {
		copied := *override
		return &copied
	}
	return &KeybindingsConfig{
		Navigation: mergeSection(base.Navigation, override.Navigation),
		Edit:       mergeSection(base.Edit, override.Edit),
		Actions:    mergeSection(base.Actions, override.Actions),
		Search:     mergeSection(base.Search, override.Search),
		Fold:       mergeSection(base.Fold, override.Fold),
		System:     mergeSection(base.System, override.System),
	}
}

func mergeSection(base, override KeybindingSectionConfig) KeybindingSectionConfig {
	if len(override) == 0 {
		return base
	}
	result := make(KeybindingSectionConfig, len(base)+len(override))
	for action, keys := range base {
		result[action] = keys
	}
	for action, keys := range override {
		result[action] = keys
	}
	return result
}

func mergeEditor(base, override *EditorConfig) *EditorConfig {
	if override == nil {
		return base
	}
	if base == nil {
		copied := *override
		return &copied
	}
	result := *base
	if override.AppendKey != "" {
		result.AppendKey = override.AppendKey
	}
	if override.Indent != 0 {
		result.Indent = override.Indent
	}
	if override.ExpandDepth != 0 {
		result.ExpandDepth = override.ExpandDepth
	}
	if override.ConfirmQuit != nil {
		result.ConfirmQuit = override.ConfirmQuit
	}
	return &result
}
