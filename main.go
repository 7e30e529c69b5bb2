package main

import (
	"os"

	"tusk/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
