package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/repatch/cmd/repatch"
	"github.com/arthur-debert/repatch/pkg/ui/styles"
)

func main() {
	rootCmd := repatch.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(repatch.ExitCode(err))
	}
}
