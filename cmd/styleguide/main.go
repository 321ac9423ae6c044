// Package main is the entry point for the styleguide CLI and MCP server.
package main

import (
	"context"
	"os"

	"styleguide/internal/cli"
	"styleguide/internal/logging"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		logging.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
