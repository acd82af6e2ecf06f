// Package source provides the adapters that retrieve the initial document.
package source

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/value"
)

// Source retrieves a document. A failed Fetch returns a FETCH_FAILURE error.
type Source interface {
	Fetch(ctx context.Context) (value.Value, error)
	Describe() string
}

// Options tune how Open builds a source.
type Options struct {
	// Format overrides format detection. Empty means detect.
	Format codec.Format
	// Headers are sent with HTTP and WebSocket requests.
	Headers map[string]string
}

// Open picks a source for ref: "-" reads stdin, http(s) and ws(s) URLs are
// fetched over the network, anything else is a file path.
func Open(ref string, opts Options) (Source, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no document given")
	}
	if ref == "-" {
		return NewReader(os.Stdin, "stdin", opts.Format), nil
	}
	if strings.Contains(ref, "://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("invalid URL: %s", ref))
		}
		switch u.Scheme {
		case "http", "https":
			return &HTTP{URL: ref, Format: opts.Format, Headers: opts.Headers}, nil
		case "ws", "wss":
			return &WebSocket{URL: ref, Headers: opts.Headers}, nil
		case "file":
			return NewFile(u.Path, opts.Format), nil
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unsupported scheme '%s'", u.Scheme)).
			WithDetail("url", ref)
	}
	return NewFile(ref, opts.Format), nil
}

// decode parses data and wraps failures as fetch failures of src.
func decode(src string, format codec.Format, data []byte) (value.Value, error) {
	v, err := codec.Decode(format, data)
	if err != nil {
		return nil, errors.FetchFailure(src, err)
	}
	return v, nil
}
