package engine

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/panjf2000/ants/v2"

	"github.com/gcbaptista/go-concordance/config"
	"github.com/gcbaptista/go-concordance/internal/corpus"
	"github.com/gcbaptista/go-concordance/internal/jobs"
	"github.com/gcbaptista/go-concordance/model"
)

const samplesDirPerm = 0755

// Engine serves concordance queries over the corpora in one samples
// directory. It implements the services.Concordancer interface.
type Engine struct {
	settings   config.Settings
	library    *corpus.Library
	store      *corpus.Store
	jobManager *jobs.Manager
	warmPool   *ants.Pool
	logger     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an engine for settings.SamplesDir. The directory is
// created when missing. Zero-valued settings take their defaults.
func NewEngine(settings config.Settings, opts ...Option) (*Engine, error) {
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}

	e := &Engine{
		settings: settings,
		library:  corpus.NewLibrary(settings.SamplesDir),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(settings.WorkerCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create warm-up pool: %w", err)
	}
	e.warmPool = pool

	e.store = corpus.NewStore(e.library, corpus.WithLogger(e.logger))
	e.jobManager = jobs.NewManager(settings.WorkerCount, e.logger)
	e.jobManager.Start()

	e.prepareSamplesDir()

	if settings.WarmOnStart {
		if _, err := e.WarmCacheAsync(nil); err != nil {
			e.logger.Warn("failed to start cache warm-up", "error", err)
		}
	}

	return e, nil
}

// prepareSamplesDir creates the samples directory if needed and reports
// how many corpora it holds.
func (e *Engine) prepareSamplesDir() {
	dir := e.library.Dir()
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		e.logger.Warn("samples directory not found, creating it", "dir", dir)
		if err := os.MkdirAll(dir, samplesDirPerm); err != nil {
			e.logger.Error("could not create samples directory", "dir", dir, "error", err)
			return
		}
	}

	names, err := e.library.List()
	if err != nil {
		e.logger.Warn("could not list corpora", "dir", dir, "error", err)
		return
	}
	if len(names) == 0 {
		e.logger.Warn("no corpora found", "dir", dir)
		return
	}
	e.logger.Info("corpora available", "dir", dir, "count", len(names))
}

// Close stops background jobs and releases the warm-up pool.
func (e *Engine) Close() {
	e.jobManager.Stop()
	e.warmPool.Release()
}

// ListCorpora returns the sorted names of every corpus in the samples
// directory. A missing directory yields an empty list.
func (e *Engine) ListCorpora() ([]string, error) {
	return e.library.List()
}

// ViewCorpus returns the full text of a corpus with simple counts. It reads
// the file directly and does not touch the cache.
func (e *Engine) ViewCorpus(name string) (model.FileContent, error) {
	data, _, err := e.library.Read(name)
	if err != nil {
		return model.FileContent{}, err
	}

	content := string(data)
	return model.FileContent{
		Filename:  name + corpus.FileExt,
		Content:   content,
		LineCount: strings.Count(content, "\n") + 1,
		WordCount: len(strings.Fields(content)),
		CharCount: utf8.RuneCountInString(content),
	}, nil
}
