package editor

import (
	"context"

	"github.com/grovetools/jsonedit/value"
)

// Sink persists the edited document. The session never writes on its own;
// callers invoke Save explicitly.
type Sink interface {
	Write(ctx context.Context, root value.Value) error
	Describe() string
}
