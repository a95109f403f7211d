package main

import (
	"os"

	"github.com/rill-lang/rill/cmd/rill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
