// Package main provides the CLI entrypoint for openapi-generator.
//
// openapi-generator turns an OpenAPI 3 document into a JAX-RS server
// project for one of the supported library variants:
//   - generate renders and writes the project
//   - plan prints the artifacts a run would produce
//   - variants lists the supported library variants
//   - config prints the effective configuration
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/edgar1992/openapi-generator/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err and its hints, or logs them in JSON mode.
func reportError(w io.Writer, err error) {
	hint := errors.FlattenHints(err)

	if logger.JSONOutput {
		logger.Errorw("command failed", "error", err.Error(), "hint", hint)
		logger.Cleanup()

		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)

	if hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
