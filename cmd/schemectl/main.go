// Command schemectl inspects scheme files offline: it normalizes them, lists
// their criterion keys and checks a profile against them without a server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
