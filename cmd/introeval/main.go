// Command introeval scores self-introduction transcripts offline, using the
// same rubric as the HTTP service.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
