// Package profiling records nested timing spans for a single command run
// and prints them as an indented summary.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper ends a span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	rec      *Recorder
}

func (s *span) Stop() {
	s.duration = time.Since(s.start)
	s.rec.pop(s)
}

// Recorder collects spans. Spans started while another is open nest under it.
type Recorder struct {
	mu    sync.Mutex
	root  *span
	stack []*span
}

// NewRecorder starts a recorder whose total time runs from now.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.root = &span{name: "total", start: time.Now(), rec: r}
	r.stack = []*span{r.root}
	return r
}

// Start opens a span named name.
func (r *Recorder) Start(name string) Stopper {
	r.mu.Lock()
	defer r.mu.Unlock()
	parent := r.stack[len(r.stack)-1]
	s := &span{name: name, start: time.Now(), rec: r}
	parent.children = append(parent.children, s)
	r.stack = append(r.stack, s)
	return s
}

func (r *Recorder) pop(s *span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.stack) - 1; i > 0; i-- {
		if r.stack[i] == s {
			r.stack = r.stack[:i]
			return
		}
	}
}

// Summarize writes every finished span with its share of the total.
func (r *Recorder) Summarize(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := time.Since(r.root.start)
	fmt.Fprintf(w, "timing: %v total\n", total.Round(100*time.Microsecond))
	for _, c := range r.root.children {
		printSpan(w, c, 1, total)
	}
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s %v (%.1f%%)\n", strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), pct)
	for _, c := range s.children {
		printSpan(w, c, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}

var (
	globalMu sync.Mutex
	global   *Recorder
)

// Enable installs a process wide recorder; Start is a no-op until then.
func Enable() *Recorder {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = NewRecorder()
	}
	return global
}

// Disable drops the process wide recorder.
func Disable() {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()
}

// Start opens a span on the process wide recorder, if one is enabled.
func Start(name string) Stopper {
	globalMu.Lock()
	r := global
	globalMu.Unlock()
	if r == nil {
		return noopStopper{}
	}
	return r.Start(name)
}
