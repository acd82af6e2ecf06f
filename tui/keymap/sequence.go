package keymap

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// SequenceResult is the outcome of feeding one key press to a Sequencer.
type SequenceResult int

const (
	SequenceNone    SequenceResult = iota // no sequence involved, handle the key normally
	SequencePending                       // waiting for the rest of a sequence
	SequenceMatch                         // a sequence completed
)

// DefaultSequenceTimeout drops a half typed sequence such as "z" after this long.
const DefaultSequenceTimeout = time.Second

// Sequencer assembles multi-key bindings (gg, zo, zR) from single presses.
type Sequencer struct {
	buf     string
	last    time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewSequencer returns a Sequencer; a zero timeout never expires.
func NewSequencer(timeout time.Duration) *Sequencer {
	return &Sequencer{timeout: timeout, now: time.Now}
}

// Pending returns the keys typed so far.
func (s *Sequencer) Pending() string { return s.buf }

// Reset forgets any partial sequence.
func (s *Sequencer) Reset() { s.buf = "" }

// Feed adds a key press. On SequenceMatch idx indexes bindings. A press that
// breaks a pending sequence is retried on its own, so "zg" followed by "g"
// still completes gg.
func (s *Sequencer) Feed(msg tea.KeyMsg, bindings ...key.Binding) (result SequenceResult, idx int) {
	return s.FeedKey(msg.String(), bindings...)
}

// FeedKey is Feed for a key string.
func (s *Sequencer) FeedKey(k string, bindings ...key.Binding) (SequenceResult, int) {
	now := s.now()
	if s.timeout > 0 && s.buf != "" && now.Sub(s.last) > s.timeout {
		s.buf = ""
	}
	s.last = now

	if s.buf != "" {
		if r, idx := s.try(s.buf+k, bindings); r != SequenceNone {
			return r, idx
		}
	}
	return s.try(k, bindings)
}

func (s *Sequencer) try(buf string, bindings []key.Binding) (SequenceResult, int) {
	for i, b := range bindings {
		for _, k := range b.Keys() {
			if k == buf {
				s.buf = ""
				return SequenceMatch, i
			}
		}
	}
	if IsPrefixOfAny(buf, bindings...) {
		s.buf = buf
		return SequencePending, -1
	}
	s.buf = ""
	return SequenceNone, -1
}

// IsPrefixOfAny reports whether buf starts, without completing, a
// multi-press key of one of bindings. Named keys such as "home" are single
// presses, so "h" is never a prefix of them.
func IsPrefixOfAny(buf string, bindings ...key.Binding) bool {
	if buf == "" {
		return false
	}
	for _, b := range bindings {
		for _, k := range b.Keys() {
			if len(k) > len(buf) && strings.HasPrefix(k, buf) && IsMultiPress(k) {
				return true
			}
		}
	}
	return false
}

// namedKeys are the multi-letter names bubbletea gives single key presses.
var namedKeys = map[string]bool{
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true,
	"enter": true, "esc": true, "tab": true, "space": true,
	"backspace": true, "delete": true, "insert": true,
}

// IsMultiPress reports whether k is typed as a sequence of presses, like
// "gg" or "zR", rather than naming one key like "home" or "ctrl+d".
func IsMultiPress(k string) bool {
	if utf8.RuneCountInString(k) < 2 || namedKeys[k] || strings.Contains(k, "+") {
		return false
	}
	if k[0] == 'f' && len(k) > 1 {
		if _, err := strconv.Atoi(k[1:]); err == nil {
			return false
		}
	}
	return true
}
