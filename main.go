package main

import (
	"os"

	"github.com/transpeq/fleetboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
