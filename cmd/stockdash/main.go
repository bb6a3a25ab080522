package main

import (
	"os"

	"github.com/rustyeddy/stockdash/cmd/stockdash/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
