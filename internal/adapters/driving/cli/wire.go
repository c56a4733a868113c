package cli

import (
	"fmt"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/corpus/dir"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/site/staging"
	"github.com/custodia-labs/scribe-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driven"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
	"github.com/custodia-labs/scribe-cli/internal/logger"
	"github.com/custodia-labs/scribe-cli/internal/renderer"
)

// newBuilder wires the build pipeline for the given corpus and output
// directories. Tests replace it with a factory backed by in-memory
// adapters.
var newBuilder = func(inDir, outDir string) (*services.BuildService, func(), error) {
	rend, err := renderer.New(renderer.Site{
		Title:       configString("site.title", "Proposal Archive"),
		ColorScheme: configString("site.color_scheme", "auto"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating renderer: %w", err)
	}

	corpus := dir.NewReader(inDir, configStringSlice("corpus.extensions"))
	writer := staging.NewWriter(outDir)

	// The build cache is best effort. Without it builds still work,
	// just never incrementally.
	var cache driven.BuildCache
	if !configBool("build.no_cache") {
		c, err := sqlite.NewCache(configString("build.cache_dir", ""))
		if err != nil {
			logger.Warn("build cache unavailable: %v", err)
		} else {
			cache = c
		}
	}

	cleanup := func() {
		if cache != nil {
			_ = cache.Close()
		}
	}
	return services.NewBuildService(corpus, writer, cache, rend), cleanup, nil
}

// resolveInDir picks the corpus directory: flag, then config, then the
// working directory.
func resolveInDir(flag string) string {
	if flag != "" {
		return flag
	}
	return configString("build.input_dir", ".")
}

// resolveOutDir picks the output directory: flag, then config, then
// "public".
func resolveOutDir(flag string) string {
	if flag != "" {
		return flag
	}
	return configString("build.output_dir", "public")
}

func configString(key, fallback string) string {
	if configStore == nil {
		return fallback
	}
	if v := configStore.GetString(key); v != "" {
		return v
	}
	return fallback
}

func configStringSlice(key string) []string {
	if configStore == nil {
		return nil
	}
	return configStore.GetStringSlice(key)
}

func configBool(key string) bool {
	if configStore == nil {
		return false
	}
	return configStore.GetBool(key)
}
