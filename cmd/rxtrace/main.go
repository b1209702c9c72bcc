// Command rxtrace runs reactive pipeline scenarios and records their traces.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/rxcore/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "rxtrace: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
