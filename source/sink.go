package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/grovetools/jsonedit/codec"
	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/util/pathutil"
	"github.com/grovetools/jsonedit/value"
)

// FileSink writes the edited document to a file, replacing it atomically.
type FileSink struct {
	Path   string
	Format codec.Format
	Indent int
}

// NewFileSink returns a sink for path. An empty format is detected from the
// path.
func NewFileSink(path string, format codec.Format, indent int) *FileSink {
	if format == "" {
		format = codec.DetectFormat(path)
	}
	return &FileSink{Path: path, Format: format, Indent: indent}
}

func (s *FileSink) Describe() string { return "file:" + s.Path }

func (s *FileSink) Write(ctx context.Context, root value.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := codec.Encode(s.Format, root, s.Indent)
	if err != nil {
		return err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	path, err := pathutil.Expand(s.Path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid output path")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write document")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to write document")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to replace document")
	}
	return nil
}
