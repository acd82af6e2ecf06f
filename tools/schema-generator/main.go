// Command schema-generator writes the JSON schema for jsonedit.yml. Run it
// from the repository root; an optional argument overrides the output path.
package main

import (
	"os"
	"path/filepath"

	"github.com/grovetools/jsonedit/config"
	"github.com/grovetools/jsonedit/logging"
)

const defaultOutput = "schema/jsonedit.schema.json"

func main() {
	out := logging.NewPretty()
	fail := func(msg string, err error) {
		out.Error(msg, err)
		os.Exit(1)
	}

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		fail("Error generating schema", err)
	}

	outputPath := defaultOutput
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		fail("Error creating schema directory", err)
	}
	if err := os.WriteFile(outputPath, append(schemaBytes, '\n'), 0o644); err != nil {
		fail("Error writing schema file", err)
	}

	out.Success("Generated config schema")
	out.Path("Output", outputPath)
}
