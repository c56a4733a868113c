package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
	"github.com/custodia-labs/scribe-cli/internal/renderer"
)

func proposalFile(id int, title, status, kind, body string) []byte {
	return []byte(fmt.Sprintf(
		"Proposal: %d\nTitle: %s\nStatus: %s\nType: %s\nCreated: 2024-01-15\n\n%s",
		id, title, status, kind, body))
}

// threeDocCorpus is the standard fixture: A references B (existing),
// C references 999 (dangling).
func threeDocCorpus() *memory.Corpus {
	corpus := memory.NewCorpus()
	corpus.AddFile("0001.txt", proposalFile(1, "Alpha", "Draft", "Process", "See Proposal 2.\n"))
	corpus.AddFile("0002.txt", proposalFile(2, "Beta", "Final", "Standards Track", "Nothing.\n"))
	corpus.AddFile("0003.txt", proposalFile(3, "Gamma", "Draft", "Process", "See Proposal 999.\n"))
	return corpus
}

// useMemoryBuilder swaps the builder factory for one backed by
// in-memory adapters for the duration of the test.
func useMemoryBuilder(t *testing.T, corpus *memory.Corpus, site *memory.Site, cache *memory.Cache) {
	t.Helper()
	orig := newBuilder
	newBuilder = func(_, _ string) (*services.BuildService, func(), error) {
		rend, err := renderer.New(renderer.Site{Title: "Test Proposals"})
		require.NoError(t, err)
		if cache == nil {
			return services.NewBuildService(corpus, site, nil, rend), func() {}, nil
		}
		return services.NewBuildService(corpus, site, cache, rend), func() {}, nil
	}
	t.Cleanup(func() { newBuilder = orig })
}

// execute runs the root command with args and captures output.
// Flag state is restored afterwards so one invocation cannot leak
// into the next on the shared command tree.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	resetFlags(rootCmd)
	return out.String(), errOut.String(), err
}

// resetFlags restores every changed flag to its default value and
// clears pflag's Changed bit, which cobra's flag-group checks consult.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().Visit(reset)
	cmd.PersistentFlags().Visit(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
