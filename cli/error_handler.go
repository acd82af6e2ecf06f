package cli

import (
	"fmt"
	"io"

	"github.com/grovetools/jsonedit/errors"
	"github.com/grovetools/jsonedit/tui/theme"
)

// ErrorHandler prints errors with a hint for the codes a user can act on.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to out.
func NewErrorHandler(out io.Writer, verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     out,
	}
}

// Handle reports err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	t := theme.DefaultTheme
	fmt.Fprintf(h.Out, "%s %s\n", t.Error.Render(theme.IconError), errors.UserMessage(err))

	if hint := Hint(err); hint != "" {
		fmt.Fprintf(h.Out, "%s\n", t.Muted.Render(hint))
	}

	if h.Verbose {
		if groveErr, ok := err.(*errors.GroveError); ok {
			fmt.Fprintf(h.Out, "\nError details:\n%s\n", groveErr.ToJSON())
		} else {
			fmt.Fprintf(h.Out, "\nError details:\n%v\n", err)
		}
	}
	return err
}

// Hint returns a suggestion for err's code, or "".
func Hint(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		return "Check the --config path, or drop the flag to use the defaults."
	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		return "Run 'jsonedit config-layers' to see which file is at fault, and 'jsonedit schema' for the accepted keys."
	case errors.ErrCodeFetchFailure:
		return "Check that the file exists or the URL is reachable; pass --header for endpoints that need auth."
	case errors.ErrCodeDecodeFailed:
		return "Pass --format if the document is not in the format its extension suggests."
	case errors.ErrCodeInvalidRoot:
		return "Only documents whose top level is an array or object can be edited."
	case errors.ErrCodeQueryFailed:
		return "Queries use JMESPath syntax, e.g. items[?price > `10`].name"
	case errors.ErrCodeCyclicValue:
		return "The document refers back to itself and cannot be written out."
	}
	return ""
}
