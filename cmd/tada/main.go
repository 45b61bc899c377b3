package main

import (
	"os"

	"github.com/Makepad-fr/tada-remote/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
