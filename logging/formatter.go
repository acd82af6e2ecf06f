package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jsonedit/tui/theme"
)

// TextFormatter writes one line per entry:
//
//	2006-01-02 15:04:05 [INFO] [editor] [file.go:12 pkg.Func] message key=value
type TextFormatter struct {
	Config FormatConfig
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	if !f.Config.DisableTimestamp {
		b.WriteString(e.Time.Format("2006-01-02 15:04:05 "))
	}

	lvl := e.Level.String()
	if e.Level == logrus.WarnLevel {
		lvl = "warn"
	}
	fmt.Fprintf(&b, "[%s]", strings.ToUpper(lvl))

	if c, ok := e.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", theme.DefaultTheme.Accent.Render(fmt.Sprint(c)))
	}
	if e.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]", filepath.Base(e.Caller.File), e.Caller.Line, filepath.Base(e.Caller.Function))
	}

	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k != "component" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}
