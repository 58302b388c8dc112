package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

const jobPollInterval = 50 * time.Millisecond

func init() {
	cmd := &cobra.Command{
		Use:   "cache [corpus...]",
		Short: "Load corpora into the cache and print cache statistics",
		Long:  "Loads the named corpora, or every corpus when none is named, then prints what the cache holds.",
		RunE:  runCache,
	}

	RootCmd.AddCommand(cmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	eng, err := openEngine(loadSettings())
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	jobID, err := eng.WarmCacheAsync(args)
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	job, err := waitForJob(cmd.Context(), eng, jobID)
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}
	if job.Status != model.JobStatusCompleted {
		fmt.Fprintf(os.Stderr, "warning: warm-up %s: %s\n", job.Status, job.Error)
	}

	stats := eng.CacheStats()
	if textOutput() {
		writeCacheStats(os.Stdout, stats)
		return nil
	}
	return printJSON(stats)
}

// waitForJob polls until the job reaches a terminal status or ctx ends.
func waitForJob(ctx context.Context, jobs services.JobManager, jobID string) (*model.Job, error) {
	ticker := time.NewTicker(jobPollInterval)
	defer ticker.Stop()

	for {
		job, err := jobs.GetJob(jobID)
		if err != nil {
			return nil, err
		}
		switch job.Status {
		case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
			return job, nil
		case model.JobStatusRunning:
			if job.Progress != nil {
				slog.Debug("warm-up progress", "job_id", jobID, "percent", job.Progress.GetProgressPercentage())
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func writeCacheStats(w io.Writer, stats model.CacheStats) {
	for _, entry := range stats.Corpora {
		fmt.Fprintf(w, "%-24s %8s lines  %10s  loaded in %s\n",
			entry.Corpus, humanize.Comma(int64(entry.LineCount)), entry.MemoryHuman,
			entry.LoadDuration.Round(time.Microsecond))
	}
	fmt.Fprintf(w, "%d corpora, %s lines, %s\n",
		stats.TotalCorpora, humanize.Comma(int64(stats.TotalLines)), stats.TotalMemoryHuman)
}
