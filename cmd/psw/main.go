// Package main is the entry point for the psw CLI client.
package main

import (
	"github.com/donaldgifford/property-search/cmd/psw/cmd"
)

func main() {
	cmd.Execute()
}
