package main

import (
	"os"

	"github.com/AndyQiu2234/MergeSpec/cmd/mergespec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
