// Package main is the entry point for the fmgen CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/fmgen/cmd/fmgen/commands"
	"github.com/thoreinstein/fmgen/internal/errors"
)

func main() {
	err := commands.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if s := errors.Suggestion(err); s != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", s)
		}
	}
	os.Exit(errors.ExitCode(err))
}
