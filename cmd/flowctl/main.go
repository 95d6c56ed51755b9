// Command flowctl inspects editor graphs and replays action scripts
// offline, without a running server.
package main

import (
	"fmt"
	"os"

	"flowstate/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.Bad.Sprint("error:"), err)
		os.Exit(1)
	}
}
