package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonedit/cli"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/tui/theme"
)

// NewKeysCmd creates the keys command, which lists the effective editor
// keybindings after presets and config overrides.
func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the editor keybindings",
		Long: `Lists every editor keybinding with the name used to override it under
tui.keybindings.<section> in jsonedit.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			sections := keymap.Export(keymap.Load(cfg))

			out := cmd.OutOrStdout()
			if cli.GetOptions(cmd).JSONOutput {
				data, err := json.MarshalIndent(sections, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			t := theme.DefaultTheme
			for _, s := range sections {
				table := ltable.New().
					Border(lipgloss.HiddenBorder()).
					Headers("KEYS", "ACTION", "CONFIG").
					StyleFunc(func(row, col int) lipgloss.Style {
						if row == ltable.HeaderRow {
							return t.Muted.Padding(0, 1)
						}
						return lipgloss.NewStyle().Padding(0, 1)
					})
				for _, b := range s.Bindings {
					if !b.Enabled {
						continue
					}
					table.Row(strings.Join(b.Keys, " "), b.Description, b.ConfigKey)
				}
				fmt.Fprintf(out, "%s %s\n%s\n", t.Header.Render(s.Name), t.Muted.Render("(tui.keybindings."+s.Config+")"), table.String())
			}
			return nil
		},
	}
}
