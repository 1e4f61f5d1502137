package main

import (
	"os"

	"github.com/pfrederiksen/gridscrape/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
