// Command ares boots the kernel core against scripted or live keystrokes and
// reports process-table diagnostics, exercising the scenarios spec.md §8
// describes as runnable commands rather than only as unit tests.
package main

import (
	"fmt"
	"os"
)

func main() {
	aresCmd := SetupCLI()
	if err := aresCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
