// Command doselog is a privacy-first local journal for logging substance
// use and rendering trend charts. All data stays on the local machine in a
// single SQLite file.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"errors"
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"

	"github.com/runnerr0/doselog/internal/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		// The parser already prints its own flag and usage errors.
		var flagsErr *goflags.Error
		if !errors.As(err, &flagsErr) {
			fmt.Fprintf(os.Stderr, "doselog: %v\n", err)
		}
		os.Exit(1)
	}
}
