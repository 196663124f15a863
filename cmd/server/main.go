// Package main implements the entry point for the Maigie API server. It
// serves the HTTP API, seeds the database and prints the effective
// configuration.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
