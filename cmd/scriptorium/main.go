// Command scriptorium finds columns, median lines and visual signatures on
// scanned manuscript pages.
package main

import (
	"os"

	"github.com/tsawler/scriptorium/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
