package main

import (
	"os"

	"github.com/adalundhe/lexatlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
