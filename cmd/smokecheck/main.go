// Command smokecheck verifies that packaged example web applications start,
// serve, and shut down cleanly.
package main

import (
	"fmt"
	"os"

	"github.com/giantswarm/smokecheck/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "smokecheck: %v\n", err)
		os.Exit(1)
	}
}
