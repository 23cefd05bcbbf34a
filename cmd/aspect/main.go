// Package main is the entry point for the aspect CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/aspect/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
