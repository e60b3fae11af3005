// Command rastercli renders PDFs to PWG-Raster or URF from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/printraster/rasterpress/cmd/rastercli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
