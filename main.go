package main

import (
	"fmt"
	"os"

	"github.com/thenoetrevino/cafe/cmd"
	"github.com/thenoetrevino/cafe/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}
	if cli.IsReported(err) {
		os.Exit(cli.ExitCode(err))
	}

	// Unknown commands, bad flag syntax and missing required flags come
	// straight from cobra and were never printed
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(cli.ExitUsage)
}
