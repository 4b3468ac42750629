package main

import (
	"os"

	"github.com/osmium-go/osmcore/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
