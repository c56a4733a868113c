// Command scribe builds a static site from a proposal corpus.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/cli"
)

// version is set at build time via
// -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	store, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "scribe: loading config: %v\n", err)
		os.Exit(1)
	}
	cli.SetConfigStore(store)
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
