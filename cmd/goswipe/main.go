package main

import (
	"os"

	"astuart.co/goswipe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
