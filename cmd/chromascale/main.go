// Chromascale - graduated colour palettes for layered SVG illustrations
//
// Chromascale generates six-step palettes and applies them to SVG artwork
// whose layer groups are numbered 1 to 6.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/chromascale/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
