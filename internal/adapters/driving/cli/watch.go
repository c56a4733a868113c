package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/ports/driving"
	"github.com/custodia-labs/scribe-cli/internal/logger"
)

var (
	watchIn  string
	watchOut string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site whenever the corpus changes",
	Long: `Builds the site, then watches the corpus directory and rebuilds
on every change. Editor save bursts are coalesced into a single
rebuild. A corpus that fails to parse keeps the previous site
published and the watcher running.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchIn, "in", "", "corpus directory (default from config, else \".\")")
	watchCmd.Flags().StringVar(&watchOut, "out", "", "output directory (default from config, else \"public\")")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	inDir := resolveInDir(watchIn)
	builder, cleanup, err := newBuilder(inDir, resolveOutDir(watchOut))
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, inDir); err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", inDir)
	rebuild(ctx, cmd, builder)

	// At most one rebuild per second, no matter how bursty the editor.
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Stopped.")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !rebuildWorthy(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			if err := limiter.Wait(ctx); err != nil {
				cmd.Println("Stopped.")
				return nil
			}
			drainEvents(watcher)
			rebuild(ctx, cmd, builder)

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", werr)
		}
	}
}

// rebuild runs one build and reports the outcome without stopping the
// watcher on failure.
func rebuild(ctx context.Context, cmd *cobra.Command, builder driving.Builder) {
	report, err := builder.Build(ctx, driving.BuildOptions{})
	if err != nil {
		var failure *domain.BuildFailure
		if errors.As(err, &failure) {
			printBuildFailure(cmd, failure)
		} else {
			cmd.PrintErrf("build failed: %v\n", err)
		}
		cmd.PrintErrln("Previous site left in place.")
		return
	}
	cmd.Printf("[%s] built %d pages (%d skipped, %d warnings)\n",
		report.FinishedAt.Format("15:04:05"),
		report.PagesWritten, report.PagesSkipped, report.WarningCount())
}

// watchTree registers the root and every non-hidden subdirectory.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// rebuildWorthy filters out events that cannot change the site.
func rebuildWorthy(ev fsnotify.Event) bool {
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) ||
		ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
}

// drainEvents discards queued events so one save burst triggers one
// rebuild.
func drainEvents(watcher *fsnotify.Watcher) {
	for {
		select {
		case <-watcher.Events:
		default:
			return
		}
	}
}
