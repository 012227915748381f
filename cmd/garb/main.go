// Garb - outfit colour and style analysis
//
// Garb extracts the dominant colours from outfit photos, scores how
// well they combine and serves the wardrobe HTTP API.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/garb/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
