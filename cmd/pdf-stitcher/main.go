// Command pdf-stitcher converts PDF pages into stitched long images.
package main

import (
	"fmt"
	"os"

	"github.com/spherical/pdf-stitcher/cmd/pdf-stitcher/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		if !commands.AlreadyReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
