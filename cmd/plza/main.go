package main

import (
	"os"

	"github.com/bnema/plza-save-editor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
