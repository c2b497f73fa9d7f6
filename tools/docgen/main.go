// Package main generates CLI reference documentation for the property-search
// server and the psw client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	pswcmd "github.com/donaldgifford/property-search/cmd/psw/cmd"
	servercmd "github.com/donaldgifford/property-search/cmd/property-search/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory for generated docs")
	format := flag.String("format", "markdown", "doc format: markdown or man")
	flag.Parse()

	roots := []*cobra.Command{servercmd.Root(), pswcmd.Root()}
	if err := generate(*output, *format, roots...); err != nil {
		log.Fatalf("generating docs: %v", err)
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

// generate writes the docs for each command tree into its own directory under
// dir, named after the root command.
func generate(dir, format string, roots ...*cobra.Command) error {
	for _, root := range roots {
		root.DisableAutoGenTag = true
		out := filepath.Join(dir, root.Name())
		if err := os.MkdirAll(out, 0o750); err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}

		var err error
		switch format {
		case "markdown":
			err = doc.GenMarkdownTree(root, out)
		case "man":
			err = doc.GenManTree(root, &doc.GenManHeader{
				Title:   root.Name(),
				Section: "1",
				Source:  "property-search",
			}, out)
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", root.Name(), err)
		}
	}
	return nil
}
