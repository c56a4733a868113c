package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func TestHistoryCmd_Empty(t *testing.T) {
	useMemoryBuilder(t, threeDocCorpus(), memory.NewSite(), memory.NewCache())

	stdout, _, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No builds recorded.")
}

func TestHistoryCmd_ListsBuilds(t *testing.T) {
	cache := memory.NewCache()
	useMemoryBuilder(t, threeDocCorpus(), memory.NewSite(), cache)

	_, _, err := execute(t, "build")
	require.NoError(t, err)

	stdout, _, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Recent builds")
	assert.Contains(t, stdout, "3 docs")
}

func TestHistoryCmd_NoCache(t *testing.T) {
	useMemoryBuilder(t, threeDocCorpus(), memory.NewSite(), nil)

	_, _, err := execute(t, "history")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}
