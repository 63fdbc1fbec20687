package main

import (
	"os"

	"github.com/alantheprice/cmdline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
