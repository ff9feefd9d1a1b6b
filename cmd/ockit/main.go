// Package main is the entry point for the ockit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/cmd/ockit/commands"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}

	os.Exit(errors.Code(err))
}
