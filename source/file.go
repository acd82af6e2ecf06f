package source

import (
	"context"
	"io"
	"os"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/util/pathutil"
	"github.com/grovetools/jsonedit/value"
)

// File reads a document from disk.
type File struct {
	Path   string
	Format codec.Format
}

// NewFile returns a file source. An empty format is detected from the path.
func NewFile(path string, format codec.Format) *File {
	return &File{Path: path, Format: format}
}

func (f *File) Describe() string { return "file:" + f.Path }

func (f *File) Fetch(ctx context.Context) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FetchFailure(f.Describe(), err)
	}
	path, err := pathutil.Expand(f.Path)
	if err != nil {
		return nil, errors.FetchFailure(f.Describe(), err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.FetchFailure(f.Describe(), err)
	}
	format := f.Format
	if format == "" {
		format = codec.DetectFormat(path)
	}
	return decode(f.Describe(), format, data)
}

// Reader reads a document from a stream such as stdin.
type Reader struct {
	r      io.Reader
	name   string
	format codec.Format
}

// NewReader returns a source reading r once. An empty format means JSON.
func NewReader(r io.Reader, name string, format codec.Format) *Reader {
	return &Reader{r: r, name: name, format: format}
}

func (r *Reader) Describe() string { return r.name }

func (r *Reader) Fetch(ctx context.Context) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FetchFailure(r.name, err)
	}
	data, err := io.ReadAll(r.r)
	if err != nil {
		return nil, errors.FetchFailure(r.name, err)
	}
	return decode(r.name, r.format, data)
}
