package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSchemaCommand creates a command that prints the JSON schema produced by
// generate, for editor integrations and validation tooling.
func NewSchemaCommand(generate func() ([]byte, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for jsonedit.yml",
		Long:  `Prints the JSON schema that jsonedit validates its configuration files against. Point your editor's YAML language server at it for completion.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := generate()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
