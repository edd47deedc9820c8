// Package main is the entry point for the regexoracle CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/regexoracle/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
