// Command e2e runs the jsonedit end-to-end scenarios against a built binary.
//
//	go build -o bin/jsonedit ./cmd/jsonedit
//	PATH=$PWD/bin:$PATH go run ./tests/e2e run
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/tend/pkg/app"
	"github.com/grovetools/tend/pkg/harness"
)

func main() {
	scenarios := []*harness.Scenario{
		VersionScenario(),
		ShowTreeScenario(),
		ShowQueryScenario(),
		ShowScalarDocumentScenario(),
		ShowMissingFileScenario(),
		ConfigLayersScenario(),
		SchemaScenario(),
		KeysExportScenario(),
		// TUI scenarios
		EditorEditAndSaveScenario(),
		EditorRenameScenario(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := app.Execute(ctx, scenarios); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
