package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/yuma/cmd/yuma"
)

func main() {
	rootCmd := yuma.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, yuma.FormatError(err))
		os.Exit(1)
	}
}
