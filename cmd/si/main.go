package main

import (
	"os"

	"github.com/avasek/sim-interact-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
