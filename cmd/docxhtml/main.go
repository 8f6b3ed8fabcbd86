package main

import (
	"os"

	"github.com/tsawler/docxhtml/internal/cli"
)

// Version information, set at build time.
var Version = "dev"

func main() {
	cmd := cli.NewRootCommand(Version)
	if err := cmd.Execute(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
