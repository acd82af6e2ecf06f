// Package logging hands out per-component logrus loggers configured from the
// logging section of jsonedit.yml and the JSONEDIT_LOG_* variables.
//
// The editor owns the terminal, so by default logs go to a dated file under
// the state directory and reach stderr only when stderr is not a terminal.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonedit/config"
	"github.com/grovetools/jsonedit/pkg/paths"
	"github.com/grovetools/jsonedit/util/pathutil"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex
)

// NewLogger returns the logger for component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if l, ok := loggers[component]; ok {
		return l
	}
	l := newLogger(component, loadConfig())
	loggers[component] = l
	return l
}

// Reset drops every cached logger so the next NewLogger call reads
// configuration and environment again.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	loggers = make(map[string]*logrus.Entry)
}

func loadConfig() Config {
	var c Config
	cfg, err := config.LoadDefault()
	if err != nil {
		return c
	}
	if err := cfg.UnmarshalExtension("logging", &c); err != nil {
		logrus.Warnf("Ignoring invalid 'logging' config: %v", err)
	}
	return c
}

func newLogger(component string, c Config) *logrus.Entry {
	l := logrus.New()
	l.SetLevel(level(c))
	l.SetReportCaller(os.Getenv("JSONEDIT_LOG_CALLER") == "true" || c.ReportCaller)
	l.SetFormatter(formatter(c.Format))

	var out []io.Writer
	if f := openLogFile(component, c.File); f != nil {
		out = append(out, f)
	}
	if toStderr(c.Format.StructuredToStderr) {
		out = append(out, os.Stderr)
	}
	switch len(out) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(out[0])
	default:
		l.SetOutput(io.MultiWriter(out...))
	}
	return l.WithField("component", component)
}

// level prefers JSONEDIT_LOG_LEVEL over the config; unparsable values give info.
func level(c Config) logrus.Level {
	name := os.Getenv("JSONEDIT_LOG_LEVEL")
	if name == "" {
		name = c.Level
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func formatter(f FormatConfig) logrus.Formatter {
	switch f.Preset {
	case "json":
		return &logrus.JSONFormatter{}
	case "simple":
		return &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	}
	return &TextFormatter{Config: f}
}

// openLogFile opens the configured file, or <state>/logs/<component>-<date>.log.
// Failures are only reported for an explicitly configured file.
func openLogFile(component string, f FileSinkConfig) io.Writer {
	var path string
	switch {
	case f.Enabled && f.Path != "":
		expanded, err := pathutil.Expand(f.Path)
		if err != nil {
			logrus.Warnf("Bad log file path %s: %v", f.Path, err)
			return nil
		}
		path = expanded
	case paths.LogsDir() != "":
		path = filepath.Join(paths.LogsDir(), component+"-"+time.Now().Format("2006-01-02")+".log")
	default:
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		if f.Enabled {
			logrus.Warnf("Failed to create log directory for %s: %v", path, err)
		}
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		if f.Enabled {
			logrus.Warnf("Failed to open log file %s: %v", path, err)
		}
		return nil
	}
	return file
}

func toStderr(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
