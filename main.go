package main

import (
	"os"

	"github.com/abhisek/curio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
