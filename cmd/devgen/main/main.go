package main

import (
	"os"

	"github.com/arthur-debert/devgen/cmd/devgen"
)

func main() {
	os.Exit(devgen.Execute())
}
