package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const sampleDoc = `{
  "name": "widget",
  "tags": ["a", "b"],
  "stock": {"warehouse": 12, "active": true},
  "discontinued": null
}`

// VersionScenario tests the 'version' command.
func VersionScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "jsonedit-basic-version",
		Steps: []harness.Step{
			harness.NewStep("Run 'jsonedit version'", func(ctx *harness.Context) error {
				bin, err := findBinary()
				if err != nil {
					return err
				}

				cmd := command.New(bin, "version")
				result := cmd.Run()
				ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)

				if err := assert.Equal(0, result.ExitCode, "jsonedit version should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "jsonedit", "Output should name the program"); err != nil {
					return err
				}
				if err := assert.Contains(result.Stdout, "Commit:", "Output should contain Commit"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Built:", "Output should contain the build date")
			}),
		},
	}
}

// ShowTreeScenario prints a file as a tree.
func ShowTreeScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-show-tree",
		Description: "Prints a JSON file with 'jsonedit show' in the tree format.",
		Tags:        []string{"jsonedit", "show"},
		Steps: []harness.Step{
			harness.NewStep("Write document", func(ctx *harness.Context) error {
				dir, path, err := writeDoc(ctx, "show-tree", "doc.json", sampleDoc)
				if err != nil {
					return err
				}
				ctx.Set("dir", dir)
				ctx.Set("doc", path)
				return nil
			}),
			harness.NewStep("Run 'jsonedit show'", func(ctx *harness.Context) error {
				stdout, _, code, err := run(ctx, ctx.GetString("dir"), "show", ctx.GetString("doc"))
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "show should exit successfully"); err != nil {
					return err
				}
				for _, want := range []string{"$: {4}", "tags: [2]", `name: "widget"`, "warehouse: 12", "discontinued: null"} {
					if err := assert.Contains(stdout, want, fmt.Sprintf("tree should contain %q", want)); err != nil {
						return err
					}
				}
				return nil
			}),
			harness.NewStep("Limit the depth", func(ctx *harness.Context) error {
				stdout, _, code, err := run(ctx, ctx.GetString("dir"), "show", ctx.GetString("doc"), "--depth", "1")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "show --depth should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(stdout, "stock: {2} …", "nested object should be elided")
			}),
		},
	}
}

// ShowQueryScenario narrows a YAML document with a JMESPath query and
// prints it as JSON.
func ShowQueryScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-show-query",
		Description: "Converts YAML to JSON and applies a JMESPath query.",
		Tags:        []string{"jsonedit", "show", "query"},
		Steps: []harness.Step{
			harness.NewStep("Query a YAML document", func(ctx *harness.Context) error {
				yamlDoc := "name: widget\nstock:\n  warehouse: 12\n  active: true\n"
				dir, path, err := writeDoc(ctx, "show-query", "doc.yaml", yamlDoc)
				if err != nil {
					return err
				}

				stdout, _, code, err := run(ctx, dir, "show", path, "--format", "json", "--query", "stock")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "show --query should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, `"warehouse": 12`, "query result should be printed as JSON"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, `"active": true`, "query result should keep every key"); err != nil {
					return err
				}
				return assert.Equal(false, strings.Contains(stdout, "widget"), "keys outside the query should be dropped")
			}),
		},
	}
}

// ShowScalarDocumentScenario checks that a scalar document prints as a
// literal rather than failing.
func ShowScalarDocumentScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-show-scalar",
		Description: "Prints a document whose root is a scalar.",
		Tags:        []string{"jsonedit", "show"},
		Steps: []harness.Step{
			harness.NewStep("Show a number document", func(ctx *harness.Context) error {
				dir, path, err := writeDoc(ctx, "show-scalar", "n.json", "42")
				if err != nil {
					return err
				}
				stdout, _, code, err := run(ctx, dir, "show", path)
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "show should accept scalar documents"); err != nil {
					return err
				}
				return assert.Contains(stdout, "42", "scalar should be printed")
			}),
		},
	}
}

// ShowMissingFileScenario checks the fetch failure path.
func ShowMissingFileScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-show-missing-file",
		Description: "Reports a fetch failure for a file that does not exist.",
		Tags:        []string{"jsonedit", "show", "errors"},
		Steps: []harness.Step{
			harness.NewStep("Show a missing file", func(ctx *harness.Context) error {
				missing := filepath.Join(ctx.RootDir, "nope.json")
				_, stderr, code, err := run(ctx, ctx.RootDir, "show", missing)
				if err != nil {
					return err
				}
				if code == 0 {
					return fmt.Errorf("show of a missing file should fail")
				}
				return assert.Contains(stderr, "nope.json", "error should name the file")
			}),
		},
	}
}

// ConfigLayersScenario tests the config-layers command with a global config,
// a project config and an override.
func ConfigLayersScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-config-layers",
		Description: "Verifies that global, project and override configs merge in order.",
		Tags:        []string{"jsonedit", "config"},
		Steps: []harness.Step{
			{
				Name: "Setup layered configuration and verify merge logic",
				Func: func(ctx *harness.Context) error {
					projectDir := filepath.Join(ctx.RootDir, "config-project")
					if err := fs.CreateDir(projectDir); err != nil {
						return err
					}
					globalConfigDir := filepath.Join(ctx.HomeDir(), ".config", "jsonedit")
					if err := fs.CreateDir(globalConfigDir); err != nil {
						return fmt.Errorf("failed to create global config dir: %w", err)
					}

					globalYAML := `tui:
  theme: gruvbox
editor:
  indent: 4
`
					if err := fs.WriteString(filepath.Join(globalConfigDir, "jsonedit.yml"), globalYAML); err != nil {
						return err
					}
					projectYAML := `tui:
  preset: arrows
editor:
  append_key: field
`
					if err := fs.WriteString(filepath.Join(projectDir, "jsonedit.yml"), projectYAML); err != nil {
						return err
					}
					if err := fs.WriteString(filepath.Join(projectDir, "jsonedit.override.yml"), "editor:\n  append_key: local\n"); err != nil {
						return err
					}

					stdout, _, code, err := run(ctx, projectDir, "config-layers")
					if err != nil {
						return err
					}
					if err := assert.Equal(0, code, "config-layers should exit successfully"); err != nil {
						return err
					}
					for _, want := range []string{
						"GLOBAL CONFIG",
						"PROJECT CONFIG",
						"OVERRIDE CONFIG",
						"FINAL MERGED CONFIG",
						"theme: gruvbox",
						"preset: arrows",
						"indent: 4",
						"append_key: local",
					} {
						if err := assert.Contains(stdout, want, fmt.Sprintf("layers should contain %q", want)); err != nil {
							return err
						}
					}
					return nil
				},
			},
		},
	}
}

// SchemaScenario checks that the config schema is printed.
func SchemaScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "jsonedit-schema",
		Tags: []string{"jsonedit", "config"},
		Steps: []harness.Step{
			harness.NewStep("Run 'jsonedit schema'", func(ctx *harness.Context) error {
				stdout, _, code, err := run(ctx, ctx.RootDir, "schema")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "schema should exit successfully"); err != nil {
					return err
				}
				if err := assert.Contains(stdout, `"keybindings"`, "schema should describe keybindings"); err != nil {
					return err
				}
				return assert.Contains(stdout, `"append_key"`, "schema should describe editor settings")
			}),
		},
	}
}

// KeysExportScenario lists the effective bindings as JSON after a project
// override.
func KeysExportScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-keys",
		Description: "Lists keybindings with a project override applied.",
		Tags:        []string{"jsonedit", "keys", "config"},
		Steps: []harness.Step{
			harness.NewStep("Override the save key", func(ctx *harness.Context) error {
				configYAML := `tui:
  keybindings:
    edit:
      save: ["W"]
`
				dir, _, err := writeDoc(ctx, "keys-project", "jsonedit.yml", configYAML)
				if err != nil {
					return err
				}
				stdout, _, code, err := run(ctx, dir, "keys", "--json")
				if err != nil {
					return err
				}
				if err := assert.Equal(0, code, "keys should exit successfully"); err != nil {
					return err
				}
				return assert.Contains(stdout, `"W"`, "override should replace the save keys")
			}),
		},
	}
}
