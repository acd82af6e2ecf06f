package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jsonedit/config"
)

// NewConfigCmd creates the config-layers command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-layers",
		Short: "Display the layered configuration for the current directory",
		Long: `Shows how the final configuration is built by merging layers:
1. Global config (~/.config/jsonedit/jsonedit.yml)
2. Project config (jsonedit.yml, searched upward from the working directory)
3. Override files (jsonedit.override.yml next to the project config)
This is useful for debugging configuration issues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			layered, err := config.LoadLayered(cwd)
			if err != nil {
				return err
			}
			return printLayers(cmd.OutOrStdout(), layered)
		},
	}
	return cmd
}

func printLayers(w io.Writer, layered *config.LayeredConfig) error {
	printLayer := func(title, path string, cfg *config.Config) error {
		if cfg == nil {
			return nil
		}
		fmt.Fprintf(w, "--- # %s\n", title)
		if path != "" {
			fmt.Fprintf(w, "# Source: %s\n", path)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if err := printLayer("DEFAULTS", "", layered.Default); err != nil {
		return err
	}
	if err := printLayer("GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global); err != nil {
		return err
	}
	if err := printLayer("PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project); err != nil {
		return err
	}
	for _, override := range layered.Overrides {
		if err := printLayer("OVERRIDE CONFIG", override.Path, override.Config); err != nil {
			return err
		}
	}
	return printLayer("FINAL MERGED CONFIG", "", layered.Final)
}
