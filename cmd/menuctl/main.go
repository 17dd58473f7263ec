// Command menuctl creates, reads, updates and imports menus on a menushare
// server, and previews published pages locally.
package main

import (
	"fmt"
	"os"
)

var version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
