package main

import (
	"os"

	"dillema/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
