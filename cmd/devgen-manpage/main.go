package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/devgen/cmd/devgen"
	"github.com/arthur-debert/devgen/internal/version"
)

// devgen-manpage writes the top level man page to stdout for packaging.
func main() {
	rootCmd := devgen.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DEVGEN",
		Section: "1",
		Source:  "devgen " + version.Version,
		Manual:  "devgen manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
