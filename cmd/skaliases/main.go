// Package main is the entry point of the skaliases CLI.
package main

import (
	"os"

	"github.com/TPGamesNL/Skript/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
