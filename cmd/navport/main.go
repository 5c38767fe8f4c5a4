// Package main is the entry point for the navport CLI.
package main

import (
	"os"

	"github.com/aidanlsb/navport/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
