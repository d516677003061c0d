package main

import (
	"fmt"
	"os"

	"github.com/psantana5/eodag-launcher/cmd/eodag-launcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
