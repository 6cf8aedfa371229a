package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/filerouter/cmd/filerouter"
	"github.com/arthur-debert/filerouter/internal/version"
)

func main() {
	rootCmd := filerouter.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "FILEROUTER",
		Section: "1",
		Source:  "filerouter " + version.Version,
		Manual:  "filerouter manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
