package main

import (
	"os"

	"github.com/neurlang/imagenn/cmd/imagenn/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
