package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

// findBinary returns the jsonedit binary under test: $JSONEDIT_BIN, or
// jsonedit on PATH.
func findBinary() (string, error) {
	if bin := os.Getenv("JSONEDIT_BIN"); bin != "" {
		return bin, nil
	}
	path, err := exec.LookPath("jsonedit")
	if err != nil {
		return "", fmt.Errorf("could not find 'jsonedit' binary in PATH; build it into ./bin first")
	}
	return path, nil
}

// writeDoc writes content to name inside a fresh project directory and
// returns both paths.
func writeDoc(ctx *harness.Context, project, name, content string) (dir, path string, err error) {
	dir = filepath.Join(ctx.RootDir, project)
	if err := fs.CreateDir(dir); err != nil {
		return "", "", err
	}
	path = filepath.Join(dir, name)
	return dir, path, fs.WriteString(path, content)
}

// run executes jsonedit with args in dir and shows its output.
func run(ctx *harness.Context, dir string, args ...string) (stdout, stderr string, exitCode int, err error) {
	bin, err := findBinary()
	if err != nil {
		return "", "", 0, err
	}
	cmd := ctx.Command(bin, args...).Dir(dir)
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return result.Stdout, result.Stderr, result.ExitCode, nil
}
