package main

import (
	"os"

	"github.com/agenthands/storygraph/cmd/storygraph/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
