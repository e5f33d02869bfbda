// Command faraid runs inheritance and Zakat calculations from the terminal.
//
// Usage:
//
//	faraid calculate --heir husband --heir daughter=2
//	faraid validate --heir wife=5
//	faraid zakat --cash 12000 --gold-grams 20 --standard gold
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// A failed calculation has already printed its messages.
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
