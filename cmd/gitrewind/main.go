// Package main provides the entry point for the gitrewind CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Sumatoshi-tech/gitrewind/cmd/gitrewind/commands"
	"github.com/Sumatoshi-tech/gitrewind/pkg/version"
)

// exitCodeValidationFailure is the exit code for an invalid summary document.
const exitCodeValidationFailure = 2

func main() {
	// A missing .env file is the common case.
	_ = godotenv.Load() //nolint:errcheck // see above.

	version.InitBinaryVersion()

	err := commands.NewRootCommand().Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	if errors.Is(err, commands.ErrValidationFailed) {
		os.Exit(exitCodeValidationFailure)
	}

	os.Exit(1)
}
