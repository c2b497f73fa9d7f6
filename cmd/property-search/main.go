// Package main is the entry point for the property-search API server.
package main

import (
	"os"

	"github.com/donaldgifford/property-search/cmd/property-search/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
