package main

import (
	"os"

	"github.com/jive-lang/jive/cmd/jive/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
