package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
	"github.com/grovetools/tend/pkg/tui"
)

// sendAndSettle sends keys one at a time and waits for the screen to settle.
func sendAndSettle(session *tui.Session, keys ...string) error {
	for _, k := range keys {
		if err := session.SendKeys(k); err != nil {
			return fmt.Errorf("failed to send %q: %w", k, err)
		}
	}
	return session.WaitStable()
}

// waitForSaved waits for the save confirmation and checks the file on disk.
func waitForSaved(session *tui.Session, path string, want ...string) error {
	if err := session.WaitForText("Saved to", 5*time.Second); err != nil {
		content, _ := session.Capture()
		return fmt.Errorf("save not confirmed: %w\nContent: %s", err, content)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read saved file: %w", err)
	}
	for _, w := range want {
		if !strings.Contains(string(data), w) {
			return fmt.Errorf("saved file missing %q:\n%s", w, data)
		}
	}
	return nil
}

// launchEditor writes doc into ctx.RootDir, opens it with output going to
// out.json and waits until ready is on screen.
func launchEditor(ctx *harness.Context, doc, ready string) error {
	if err := fs.WriteString(filepath.Join(ctx.RootDir, "doc.json"), doc); err != nil {
		return err
	}
	bin, err := findBinary()
	if err != nil {
		return err
	}
	// StartTUI runs in ctx.RootDir
	session, err := ctx.StartTUI(bin, []string{"doc.json", "-o", "out.json"})
	if err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}
	ctx.Set("tui_session", session)

	if err := session.WaitForText(ready, 10*time.Second); err != nil {
		content, _ := session.Capture()
		return fmt.Errorf("editor did not load within timeout: %w\nContent: %s", err, content)
	}
	return session.WaitStable()
}

// EditorEditAndSaveScenario edits a value in place and saves it.
func EditorEditAndSaveScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-tui-edit-save",
		Description: "Edits a scalar in the editor, saves with w and quits.",
		Tags:        []string{"jsonedit", "tui", "edit"},
		LocalOnly:   true, // TUI tests require tmux
		Steps: []harness.Step{
			harness.NewStep("Launch editor", func(ctx *harness.Context) error {
				return launchEditor(ctx, `{"name":"alpha","count":1}`, "alpha")
			}),
			harness.NewStep("Verify initial tree", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				for _, want := range []string{"name", "alpha", "count"} {
					if err := session.AssertContains(want); err != nil {
						content, _ := session.Capture()
						return fmt.Errorf("expected %q not found: %w\nContent: %s", want, err, content)
					}
				}
				return nil
			}),
			harness.NewStep("Edit the name", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendAndSettle(session, "j", "e"); err != nil {
					return err
				}
				if err := session.AssertContains("Edit"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("edit prompt not shown: %w\nContent: %s", err, content)
				}
				if err := sendAndSettle(session, "C-u", "beta", "Enter"); err != nil {
					return err
				}
				if err := session.AssertContains("modified"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("document not marked modified: %w\nContent: %s", err, content)
				}
				return session.AssertContains("beta")
			}),
			harness.NewStep("Save and quit", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendAndSettle(session, "w"); err != nil {
					return err
				}
				if err := waitForSaved(session, filepath.Join(ctx.RootDir, "out.json"), `"name": "beta"`, `"count": 1`); err != nil {
					return err
				}
				return session.SendKeys("q")
			}),
		},
	}
}

// EditorRenameScenario renames a key and appends a child before saving.
func EditorRenameScenario() *harness.Scenario {
	return &harness.Scenario{
		Name:        "jsonedit-tui-rename-append",
		Description: "Renames an object key, appends an array element and saves.",
		Tags:        []string{"jsonedit", "tui", "rename", "append"},
		LocalOnly:   true, // TUI tests require tmux
		Steps: []harness.Step{
			harness.NewStep("Launch editor", func(ctx *harness.Context) error {
				return launchEditor(ctx, `{"title":"x","items":[1]}`, "title")
			}),
			harness.NewStep("Rename title to heading", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendAndSettle(session, "j", "r", "C-u", "heading", "Enter"); err != nil {
					return err
				}
				if err := session.AssertContains("heading"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("renamed key not shown: %w\nContent: %s", err, content)
				}
				return nil
			}),
			harness.NewStep("Append a number to items", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				// heading -> items, then pick the number kind
				if err := sendAndSettle(session, "j", "a"); err != nil {
					return err
				}
				if err := session.AssertContains("Append to $.items"); err != nil {
					content, _ := session.Capture()
					return fmt.Errorf("append picker not shown: %w\nContent: %s", err, content)
				}
				return sendAndSettle(session, "n")
			}),
			harness.NewStep("Save and quit", func(ctx *harness.Context) error {
				session := ctx.Get("tui_session").(*tui.Session)
				if err := sendAndSettle(session, "w"); err != nil {
					return err
				}
				if err := waitForSaved(session, filepath.Join(ctx.RootDir, "out.json"), `"heading": "x"`, "0"); err != nil {
					return err
				}
				return session.SendKeys("q")
			}),
		},
	}
}
