package main

import (
	"os"

	"github.com/dshills/release-it/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
