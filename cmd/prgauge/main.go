// main is the entry point for the prgauge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/prgauge/prgauge/cmd"
	"github.com/prgauge/prgauge/internal/iocache"
)

func main() {
	err := cmd.Execute()

	// Close store connections before deciding the exit code, so a failed
	// command still releases its database handles.
	iocache.CloseCaching()

	if err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
