package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/filerouter/cmd/filerouter"
	"github.com/arthur-debert/filerouter/pkg/style"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	// A missing .env file is not an error
	_ = godotenv.Load()

	rootCmd := filerouter.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		terminal := isatty.IsTerminal(os.Stderr.Fd())
		fmt.Fprintln(os.Stderr, style.NewRenderer(terminal).RenderError(err))
		os.Exit(1)
	}
}
