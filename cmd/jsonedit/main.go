package main

import (
	"os"

	"github.com/grovetools/jsonedit/cli"
	"github.com/grovetools/jsonedit/cmd"
	"github.com/grovetools/jsonedit/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}
	if errors.GetCode(err) == "" {
		// Flag and argument errors from cobra.
		cli.PrintError(executed, err)
	} else {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(os.Stderr, verbose).Handle(err)
	}
	os.Exit(1)
}
