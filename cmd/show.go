package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/jsonedit/cli"
	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/cursor"
	"github.com/grovetools/jsonedit/editor"
	"github.com/grovetools/jsonedit/pkg/profiling"
	"github.com/grovetools/jsonedit/tree"
	"github.com/grovetools/jsonedit/tui/theme"
	"github.com/grovetools/jsonedit/value"
)

type showFlags struct {
	sourceFlags
	query  string
	format string
	depth  int
}

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	f := &showFlags{}
	cmd := &cobra.Command{
		Use:   "show <source>",
		Short: "Print a document as a tree or in another format",
		Long: `Fetches a document and prints it without starting the editor.
A JMESPath --query narrows the output to part of the document.

Examples:
  jsonedit show package.json
  jsonedit show config.yaml --format json
  jsonedit show https://api.example.com/items --query "items[0]"`,
		Args: cobra.ExactArgs(1),
		RunE: f.run,
	}
	f.register(cmd, "input-format")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "JMESPath expression applied before printing")
	cmd.Flags().StringVarP(&f.format, "format", "f", "tree", "Output format: tree, json, yaml, toml")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 0, "Deepest level printed by the tree format (0 prints everything)")
	return cmd
}

func (f *showFlags) run(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd, "show")
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := f.open(args[0])
	if err != nil {
		return err
	}

	fetch := profiling.Start("fetch " + src.Describe())
	doc, err := src.Fetch(cmd.Context())
	fetch.Stop()
	if err != nil {
		return err
	}
	if f.query != "" {
		logger.WithField("query", f.query).Debug("Applying query")
		q := profiling.Start("query")
		doc, err = codec.Query(doc, f.query)
		q.Stop()
		if err != nil {
			return err
		}
	}

	render := profiling.Start("render")
	defer render.Stop()

	format := f.format
	if cli.GetOptions(cmd).JSONOutput {
		format = "json"
	}
	out := cmd.OutOrStdout()
	if format == "tree" {
		return printTree(out, doc, f.depth)
	}

	enc, err := codec.ParseFormat(format)
	if err != nil {
		return err
	}
	data, err := codec.Encode(enc, doc, cfg.Editor.Indent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimRight(string(data), "\n"))
	return err
}

// printTree renders doc with the same tree builder the editor uses. Scalars
// print as a single literal.
func printTree(w io.Writer, doc value.Value, maxDepth int) error {
	if !value.KindOf(doc).IsContainer() {
		_, err := fmt.Fprintln(w, editor.FormatLiteral(doc))
		return err
	}

	t := theme.DefaultTheme
	hooks := tree.Hooks{
		Node: func(n *tree.Node, v value.Value, _ *cursor.Cursor, _ *tree.ParentLink) {
			switch n.Kind {
			case tree.KindArray:
				n.Data = t.Bracket.Render(fmt.Sprintf("[%d]", n.Len()))
			case tree.KindObject:
				n.Data = t.Bracket.Render(fmt.Sprintf("{%d}", n.Len()))
			case tree.KindSentinel:
				n.Data = t.Visited.Render(tree.SentinelText)
			default:
				text := editor.FormatLiteral(v)
				if s, ok := v.(string); ok {
					text = fmt.Sprintf("%q", s)
				}
				n.Data = text
			}
		},
		// Keys print through their value's label.
		Key: func(*tree.Node, value.Value, *cursor.Cursor, *tree.ParentLink) {},
	}
	root, err := tree.Build(doc, hooks)
	if err != nil {
		return err
	}

	var b strings.Builder
	root.Walk(func(n *tree.Node) bool {
		label := n.Label()
		if n.Cursor.IsRoot() {
			label = "$"
		}
		labelStyle := t.Key
		if _, isIndex := n.Cursor.SlotIndex(); isIndex {
			labelStyle = t.Index
		}
		b.WriteString(strings.Repeat("  ", n.Depth))
		b.WriteString(labelStyle.Render(label))
		b.WriteString(": ")
		b.WriteString(n.Data.(string))
		if maxDepth > 0 && n.Depth >= maxDepth && n.IsContainer() && n.Len() > 0 {
			b.WriteString(" …\n")
			return false
		}
		b.WriteString("\n")
		return true
	})
	_, err = io.WriteString(w, b.String())
	return err
}
