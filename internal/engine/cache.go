package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"

	"github.com/gcbaptista/go-concordance/internal/corpus"
	"github.com/gcbaptista/go-concordance/internal/jobs"
	"github.com/gcbaptista/go-concordance/model"
)

// CacheStats describes every cached corpus, sorted by name, with totals.
func (e *Engine) CacheStats() model.CacheStats {
	entries := e.store.Stats()

	stats := model.CacheStats{
		Corpora:      entries,
		TotalCorpora: len(entries),
	}
	for _, entry := range entries {
		stats.TotalLines += entry.LineCount
		stats.TotalMemoryBytes += entry.MemoryBytes
	}
	stats.TotalMemoryHuman = humanize.Bytes(uint64(stats.TotalMemoryBytes))
	return stats
}

// EvictCache drops one corpus from the cache, or every corpus when name is
// empty, and returns how many entries were removed.
func (e *Engine) EvictCache(name string) (int, error) {
	if name == "" {
		return e.store.EvictAll(), nil
	}
	if err := e.store.Evict(name); err != nil {
		return 0, err
	}
	return 1, nil
}

// WarmCacheAsync loads corpora into the cache in a background job and
// returns the job ID. An empty list warms every corpus in the samples
// directory. Names are validated before the job is created.
func (e *Engine) WarmCacheAsync(names []string) (string, error) {
	for _, name := range names {
		if err := corpus.ValidateName(name); err != nil {
			return "", err
		}
	}

	target := model.AllCorpora
	if len(names) == 1 {
		target = names[0]
	}

	jobID := e.jobManager.CreateJob(model.JobTypeWarmCache, target, map[string]string{
		"operation": "warm_cache",
		"requested": strconv.Itoa(len(names)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeWarmCacheJob(ctx, job.ID, names)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start warm cache job: %w", err)
	}

	return jobID, nil
}

// executeWarmCacheJob fans the loads out over the warm-up pool. The job
// fails if any corpus could not be loaded; the others stay cached.
func (e *Engine) executeWarmCacheJob(ctx context.Context, jobID string, names []string) error {
	if len(names) == 0 {
		all, err := e.library.List()
		if err != nil {
			return fmt.Errorf("failed to list corpora: %w", err)
		}
		names = all
	}

	total := len(names)
	e.jobManager.UpdateJobProgress(jobID, 0, total, "Starting cache warm-up")

	var (
		wg     sync.WaitGroup
		done   atomic.Int64
		mu     sync.Mutex
		errs   []error
		record = func(err error) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	)

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		name := name // per-iteration copy (go directive < 1.22)
		wg.Add(1)
		submitErr := e.warmPool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if _, err := e.store.Get(name); err != nil {
				record(err)
			}
			current := int(done.Add(1))
			e.jobManager.UpdateJobProgress(jobID, current, total, "Loaded "+name)
		})
		if submitErr != nil {
			wg.Done()
			record(fmt.Errorf("failed to schedule %s: %w", name, submitErr))
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d corpora failed to load: %w", len(errs), total, errors.Join(errs...))
	}

	e.jobManager.UpdateJobProgress(jobID, total, total, "Cache warm-up completed")
	e.logger.Info("cache warmed", "corpora", total)
	return nil
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs lists background jobs for target, newest first. An empty target
// lists every job.
func (e *Engine) ListJobs(target string, status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(target, status)
}

// GetJobMetrics returns job execution metrics.
func (e *Engine) GetJobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}
