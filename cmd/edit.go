package cmd

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/jsonedit/cli"
	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/config"
	"github.com/grovetools/jsonedit/editor"
	"github.com/grovetools/jsonedit/logging"
	"github.com/grovetools/jsonedit/source"
	"github.com/grovetools/jsonedit/tui"
	"github.com/grovetools/jsonedit/tui/components/jsontree"
	"github.com/grovetools/jsonedit/tui/keymap"
	"github.com/grovetools/jsonedit/tui/theme"
)

type editFlags struct {
	sourceFlags
	output       string
	outputFormat string
	expandDepth  int
	appendKey    string
}

// addEditFlags registers the editor flags on cmd and makes it run the
// editor.
func addEditFlags(cmd *cobra.Command) {
	f := &editFlags{}
	f.register(cmd, "format")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "File written on save (w); saving is disabled without it")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "", "Format of the saved file: json, yaml, toml (default: from --output)")
	cmd.Flags().IntVar(&f.expandDepth, "expand-depth", 0, "Levels shown unfolded on open (default: editor.expand_depth)")
	cmd.Flags().StringVar(&f.appendKey, "append-key", "", "Key for entries appended to objects (default: editor.append_key)")
	cmd.RunE = f.run
}

// NewEditCmd creates the edit command, the same as running jsonedit with a
// source and no subcommand.
func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <source>",
		Short: "Open a document in the interactive editor",
		Args:  cobra.ExactArgs(1),
	}
	addEditFlags(cmd)
	return cmd
}

func (flags *editFlags) run(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd, "edit")

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.TUI.Icons != "" {
		theme.UseIcons(cfg.TUI.Icons)
	}

	src, err := flags.open(args[0])
	if err != nil {
		return err
	}

	var sink editor.Sink
	if flags.output != "" {
		var format codec.Format
		if flags.outputFormat != "" {
			if format, err = codec.ParseFormat(flags.outputFormat); err != nil {
				return err
			}
		}
		sink = source.NewFileSink(flags.output, format, cfg.Editor.Indent)
	}

	opts := jsontree.Options{
		Source:      src,
		Sink:        sink,
		Keys:        keymap.Load(cfg),
		AppendKey:   cfg.Editor.AppendKey,
		ExpandDepth: cfg.Editor.ExpandDepth,
		Indent:      cfg.Editor.Indent,
		ConfirmQuit: *cfg.Editor.ConfirmQuit,
		Logger:      logger,
	}
	if flags.expandDepth > 0 {
		opts.ExpandDepth = flags.expandDepth
	}
	if flags.appendKey != "" {
		opts.AppendKey = flags.appendKey
	}

	model, err := jsontree.New(opts)
	if err != nil {
		return err
	}

	logger.WithField("source", src.Describe()).Debug("Starting editor")
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	final, err := tui.Run(model, tui.RunOptions{
		InputTTY: args[0] == "-",
		OnStart: func(p *tea.Program) {
			watchConfig(ctx, cmd, p.Send, logger)
		},
	})
	if err != nil {
		return err
	}
	if m, ok := final.(*jsontree.Model); ok && m.Dirty() {
		logging.NewPrettyTo(cmd.ErrOrStderr()).Warn("Quit with unsaved changes")
	}
	return nil
}

// watchConfig sends a jsontree.ConfigChangedMsg whenever one of the config
// layers changes, until ctx is done. Failing to watch only disables reloads.
func watchConfig(ctx context.Context, cmd *cobra.Command, send func(tea.Msg), logger *logrus.Entry) {
	var files []string
	if path := cli.GetOptions(cmd).ConfigFile; path != "" {
		files = []string{path}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}
		layered, err := config.LoadLayered(cwd)
		if err != nil {
			logger.WithError(err).Debug("Config watching disabled")
			return
		}
		files = layered.WatchFiles()
	}

	w, err := config.NewWatcher(files, config.DefaultWatchDebounce, func(file string) {
		cfg, err := cli.LoadConfig(cmd)
		send(jsontree.ConfigChangedMsg{File: file, Config: cfg, Err: err})
	}, logger)
	if err != nil {
		logger.WithError(err).Debug("Config watching disabled")
		return
	}
	go w.Start(ctx)
}
