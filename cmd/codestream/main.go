package main

import (
	"os"

	"codestream/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
