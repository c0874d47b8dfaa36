// Package main provides the entry point for the usermerge CLI.
package main

import (
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/jonathan/usermerge/internal/logging"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the CLI with args and returns the process exit code. Fatal
// errors are logged to stdout.
func run(args []string, stdout io.Writer) int {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetOut(stdout)
	cmd.SetErr(stdout)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		logger := a.logger
		if logger == nil {
			// Flags failed to parse before the configured logger existed.
			logger = logging.New(stdout, "error", "text")
		}
		logger.Error(err.Error())
		return 1
	}
	return 0
}
