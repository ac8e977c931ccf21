package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/yuma/cmd/yuma"
	"github.com/arthur-debert/yuma/internal/version"
)

func main() {
	header := &doc.GenManHeader{
		Title:   "YUMA",
		Section: "1",
		Source:  "yuma " + version.Version,
		Manual:  "yuma manual",
	}

	if err := doc.GenMan(yuma.NewRootCmd(), header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
