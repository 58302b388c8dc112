// Package testing provides utilities and helpers for testing the concordance service.
package testing

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

// SampleText is a small corpus used across tests. "fox" appears on lines 1
// and 3 (the second time capitalised), "dog" only on line 2.
const SampleText = "The quick brown fox jumps over the lazy cat.\n" +
	"\n" +
	"A lazy dog sleeps, and the fox watches.\n" +
	"Fox and hound: an old story.\n"

// CreateSamplesDir returns a fresh samples directory removed at test end.
func CreateSamplesDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// WriteCorpus writes content to "<dir>/<name>.txt" and returns the path.
func WriteCorpus(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name+".txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write corpus %s", name)
	return path
}

// RewriteCorpus replaces the content of an existing corpus and moves its
// modification time forward so that the change is visible even on
// filesystems with coarse timestamps.
func RewriteCorpus(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name+".txt")
	info, err := os.Stat(path)
	require.NoError(t, err, "Corpus %s must exist before it is rewritten", name)

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to rewrite corpus %s", name)

	later := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later), "Failed to bump mtime of corpus %s", name)
	return path
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it completes, fails or times out.
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()

	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
			return nil
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted, model.JobStatusFailed, model.JobStatusCancelled:
				return job
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedTarget string) {
	t.Helper()

	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedTarget, job.Target, "Job target should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
