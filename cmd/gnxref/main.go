// Package main provides the gnxref CLI application.
// gnxref cross-references taxa of independent taxonomy checklists.
package main

import (
	"os"
)

var (
	// Version is set by build flags
	Version = "dev"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
