// Package cmd implements the jsonedit command tree.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonedit/cli"
	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/config"
	"github.com/grovetools/jsonedit/pkg/profiling"
	"github.com/grovetools/jsonedit/source"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/tui/theme"
	"github.com/grovetools/jsonedit/version"
)

// NewRootCmd builds the jsonedit command. Without a subcommand it opens the
// editor on its argument.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand("jsonedit [source]", "Browse and edit JSON, YAML and TOML documents in the terminal")
	root.Long = `Opens a document as a foldable tree. Values can be edited in place,
keys renamed and children appended; nothing is written until you save.

The source is a file path, an http(s):// or ws(s):// URL, or - for stdin.

Examples:
  jsonedit package.json
  jsonedit config.yaml -o config.yaml
  jsonedit https://api.example.com/items -H "Authorization: Bearer $TOKEN"
  curl -s https://api.example.com/items | jsonedit - -o items.json`
	root.Args = cobra.ExactArgs(1)
	addEditFlags(root)
	cli.SetVersionTemplate(root, version.GetInfo())
	profiling.NewCobraProfiler().AddFlags(root)

	root.AddCommand(
		NewEditCmd(),
		NewShowCmd(),
		NewConfigCmd(),
		NewKeysCmd(),
		cli.NewSchemaCommand(config.GenerateSchema),
		cli.NewVersionCommand("jsonedit"),
	)

	cli.SetStyledHelpWithExtras(root, keyHints)
	cli.ApplyStyledHelpRecursive(root)
	return root
}

// keyHints lists the main editor keys under the root help.
func keyHints(w io.Writer, t *theme.Theme) {
	keys := keymap.DefaultVim()
	fmt.Fprintln(w, "\n "+t.Header.Render("EDITOR KEYS"))
	for _, b := range keys.ShortHelp() {
		h := b.Help()
		fmt.Fprintf(w, "   %-6s %s\n", h.Key, t.Muted.Render(h.Desc))
	}
}

// sourceFlags are shared by every command that reads a document.
type sourceFlags struct {
	format  string
	headers []string
}

// register adds the flags; formatFlag names the input format flag.
func (f *sourceFlags) register(cmd *cobra.Command, formatFlag string) {
	cmd.Flags().StringVar(&f.format, formatFlag, "", "Input format: json, yaml, toml (default: from the file extension)")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "HTTP header for URL sources, as 'Name: value' (repeatable)")
}

// open resolves ref into a source.
func (f *sourceFlags) open(ref string) (source.Source, error) {
	opts := source.Options{}
	if f.format != "" {
		format, err := codec.ParseFormat(f.format)
		if err != nil {
			return nil, err
		}
		opts.Format = format
	}
	headers, err := parseHeaders(f.headers)
	if err != nil {
		return nil, err
	}
	opts.Headers = headers
	return source.Open(ref, opts)
}

// parseHeaders turns "Name: value" pairs into a map.
func parseHeaders(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, val, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		headers[name] = strings.TrimSpace(val)
	}
	return headers, nil
}
