package main

import (
	"os"

	"github.com/queryguard/queryguard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
