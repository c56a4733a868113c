// Package cli implements the scribe command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

var (
	// version is overridden at build time via ldflags.
	version = "dev"

	// verbose toggles pipeline stage logging on stderr.
	verbose bool

	// configStore holds the site configuration. Set by main before
	// Execute; commands fall back to built-in defaults when nil.
	configStore driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Build a static site from a proposal corpus",
	Long: `Scribe turns a directory of proposal documents into a browsable
static site.

Each document starts with a colon-delimited metadata header (Proposal,
Title, Author, Status, Type, Created). Scribe parses the headers,
resolves "Proposal N" cross-references between documents, derives a
grouped index, renders one page per document, and publishes the site
atomically.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose pipeline logging")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetConfigStore injects the site configuration store.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
