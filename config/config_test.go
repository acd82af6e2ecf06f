package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grovetools/jsonedit/errors"
)

// isolate points the global config at an empty temp dir.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("JSONEDIT_HOME", t.TempDir())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestExtensions verifies that extension sections in jsonedit.yml are captured
func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
version: "1.0"
editor:
  append_key: field

logging:
  level: debug
  file:
    enabled: true
    path: /tmp/jsonedit.log
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Editor.AppendKey != "field" {
		t.Errorf("Expected append_key 'field', got '%s'", cfg.Editor.AppendKey)
	}
	if _, ok := cfg.Extensions["editor"]; ok {
		t.Error("Core sections must not be captured as extensions")
	}

	type fileCfg struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	}
	type logCfg struct {
		Level string  `yaml:"level"`
		File  fileCfg `yaml:"file"`
	}

	var lc logCfg
	if err := cfg.UnmarshalExtension("logging", &lc); err != nil {
		t.Fatalf("Failed to unmarshal logging extension: %v", err)
	}
	if lc.Level != "debug" || !lc.File.Enabled || lc.File.Path != "/tmp/jsonedit.log" {
		t.Errorf("Unexpected logging extension: %+v", lc)
	}

	var missing logCfg
	if err := cfg.UnmarshalExtension("nope", &missing); err != nil {
		t.Errorf("Missing extension should not be an error: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(""))
	if err != nil {
		t.Fatalf("Failed to load empty config: %v", err)
	}
	if cfg.Editor.AppendKey != "key" {
		t.Errorf("Expected default append key 'key', got '%s'", cfg.Editor.AppendKey)
	}
	if cfg.Editor.Indent != 2 || cfg.Editor.ExpandDepth != 2 {
		t.Errorf("Unexpected defaults: %+v", cfg.Editor)
	}
	if cfg.Editor.ConfirmQuit == nil || !*cfg.Editor.ConfirmQuit {
		t.Error("confirm_quit should default to true")
	}
	if cfg.TUI.Preset != "vim" {
		t.Errorf("Expected vim preset, got %s", cfg.TUI.Preset)
	}
}

func TestSchemaValidation(t *testing.T) {
	_, err := LoadFromBytes([]byte("tui:\n  preset: notepad\n"))
	if err == nil {
		t.Fatal("Expected an invalid preset to fail validation")
	}
	if !errors.Is(err, errors.ErrCodeConfigValidation) {
		t.Errorf("Expected CONFIG_VALIDATION, got %v", errors.GetCode(err))
	}

	_, err = LoadFromBytes([]byte("editor:\n  indent: 20\n"))
	if err == nil {
		t.Error("Expected indent above maximum to fail validation")
	}

	_, err = LoadFromBytes([]byte("editor: [unclosed\n"))
	if !errors.Is(err, errors.ErrCodeConfigInvalid) {
		t.Errorf("Expected CONFIG_INVALID for broken YAML, got %v", err)
	}
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("JSONEDIT_TEST_KEY", "fromenv")
	cfg, err := LoadFromBytes([]byte("editor:\n  append_key: ${JSONEDIT_TEST_KEY}\ntui:\n  theme: ${JSONEDIT_UNSET_THEME:-gruvbox}\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Editor.AppendKey != "fromenv" {
		t.Errorf("Expected expanded key, got %s", cfg.Editor.AppendKey)
	}
	if cfg.TUI.Theme != "gruvbox" {
		t.Errorf("Expected default theme, got %s", cfg.TUI.Theme)
	}
}

func TestHierarchicalMerging(t *testing.T) {
	isolate(t)
	home := os.Getenv("JSONEDIT_HOME")
	writeFile(t, filepath.Join(home, "config", "jsonedit", "jsonedit.yml"), `
tui:
  theme: kanagawa
  keybindings:
    system:
      quit: ["ctrl+q"]
editor:
  indent: 4
logging:
  level: info
`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, "jsonedit.yml"), `
editor:
  append_key: item
logging:
  report_caller: true
`)
	writeFile(t, filepath.Join(project, "jsonedit.override.yml"), `
tui:
  theme: terminal
`)

	nested := filepath.Join(project, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(nested)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.TUI.Theme != "terminal" {
		t.Errorf("Override should win, got theme %s", cfg.TUI.Theme)
	}
	if got := cfg.TUI.Keybindings.System["quit"]; len(got) != 1 || got[0] != "ctrl+q" {
		t.Errorf("Global keybindings should survive merging, got %v", got)
	}
	if cfg.Editor.Indent != 4 || cfg.Editor.AppendKey != "item" {
		t.Errorf("Unexpected editor config: %+v", cfg.Editor)
	}
	logging, ok := cfg.Extensions["logging"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected merged logging extension, got %T", cfg.Extensions["logging"])
	}
	if logging["level"] != "info" || logging["report_caller"] != true {
		t.Errorf("Extension maps should merge, got %v", logging)
	}

	layered, err := LoadLayered(nested)
	if err != nil {
		t.Fatalf("LoadLayered failed: %v", err)
	}
	if layered.Global == nil || layered.Project == nil || len(layered.Overrides) != 1 {
		t.Errorf("Expected all three layers, got %+v", layered)
	}
	if layered.FilePaths[SourceProject] != filepath.Join(project, "jsonedit.yml") {
		t.Errorf("Unexpected project path %s", layered.FilePaths[SourceProject])
	}
}

func TestNoConfigFiles(t *testing.T) {
	isolate(t)
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("Missing config must not be an error: %v", err)
	}
	if cfg.Editor.AppendKey != "key" {
		t.Errorf("Expected defaults, got %+v", cfg.Editor)
	}
}

func TestTOMLConfig(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	writeFile(t, filepath.Join(project, "jsonedit.toml"), `
[editor]
append_key = "entry"
expand_depth = 5

[logging]
level = "warn"
`)

	cfg, err := LoadFrom(project)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Editor.AppendKey != "entry" || cfg.Editor.ExpandDepth != 5 {
		t.Errorf("Unexpected editor config: %+v", cfg.Editor)
	}
	var lc struct {
		Level string `yaml:"level"`
	}
	if err := cfg.UnmarshalExtension("logging", &lc); err != nil || lc.Level != "warn" {
		t.Errorf("Expected TOML extension to decode, got %+v (%v)", lc, err)
	}
}

func TestFindConfigFileNotFound(t *testing.T) {
	_, err := FindConfigFile(t.TempDir())
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("Expected CONFIG_NOT_FOUND, got %v", err)
	}
}

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	if err != nil {
		t.Fatalf("GenerateSchema failed: %v", err)
	}
	for _, want := range []string{`"editor"`, `"append_key"`, `"keybindings"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Schema should mention %s", want)
		}
	}
}
