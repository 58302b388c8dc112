package corpus

import (
	"io/fs"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/singleflight"

	internalErrors "github.com/gcbaptista/go-concordance/internal/errors"
	"github.com/gcbaptista/go-concordance/internal/tokenizer"
	"github.com/gcbaptista/go-concordance/model"
)

// Corpus is a loaded corpus. It is never modified after the store publishes
// it; a reload publishes a new Corpus instead.
type Corpus struct {
	Name   string
	Lines  []string   // Non-blank, trimmed lines; Lines[i] is line number i+1
	Tokens [][]string // Tokens[i] is tokenizer.Tokenize(Lines[i])
}

// LineCount returns the number of lines in the corpus.
func (c *Corpus) LineCount() int {
	return len(c.Lines)
}

// entry pairs a corpus with its cache metadata. Both are swapped together.
type entry struct {
	corpus       *Corpus
	modTime      time.Time
	size         int64
	loadDuration time.Duration
	loadedAt     time.Time
	memoryBytes  int64

	accessCount  atomic.Int64
	lastAccessed atomic.Int64 // unix nanoseconds
}

func (e *entry) fresh(info fs.FileInfo) bool {
	return e.modTime.Equal(info.ModTime()) && e.size == info.Size()
}

func (e *entry) touch(now time.Time) {
	e.accessCount.Add(1)
	e.lastAccessed.Store(now.UnixNano())
}

// Store caches corpora in memory keyed by name and reloads a corpus when its
// backing file's modification time or size changes.
//
// Staleness is detected from (mtime, size) only, so an edit that keeps the
// size and lands within the filesystem's timestamp resolution is not seen.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	gens    map[string]uint64 // bumped when that corpus is evicted
	epoch   uint64            // bumped when the whole cache is cleared

	library *Library
	loads   singleflight.Group
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store over library.
func NewStore(library *Library, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
		library: library,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Library returns the library the store reads from.
func (s *Store) Library() *Library {
	return s.library
}

// Get returns the corpus for name, loading it when it is not cached or when
// the backing file changed since it was cached.
//
// The name is validated before any filesystem access. Errors match
// errors.ErrInvalidName, errors.ErrCorpusNotFound or errors.ErrLoadFailed;
// on error the cache is left as it was.
func (s *Store) Get(name string) (*Corpus, error) {
	info, err := s.library.Stat(name)
	if err != nil {
		return nil, err
	}

	if e := s.cached(name, info); e != nil {
		e.touch(s.now())
		return e.corpus, nil
	}

	v, err, shared := s.loads.Do(name, func() (interface{}, error) {
		// A load that finished between the check above and Do may already
		// have published a fresh corpus.
		if e := s.cached(name, info); e != nil {
			return e.corpus, nil
		}
		return s.load(name)
	})
	if err != nil {
		return nil, err
	}
	corpus := v.(*Corpus)
	if shared {
		s.logger.Debug("joined in-flight corpus load", "corpus", name)
	}

	s.touch(name, corpus)
	return corpus, nil
}

// cached returns the entry for name when it is still fresh for info.
func (s *Store) cached(name string, info fs.FileInfo) *entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[name]
	if !ok || !e.fresh(info) {
		return nil
	}
	return e
}

// touch records an access on the entry that currently holds corpus.
func (s *Store) touch(name string, corpus *Corpus) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[name]; ok && e.corpus == corpus {
		e.touch(s.now())
	}
}

// load reads, splits and tokenizes the backing file, then publishes the
// result unless name was evicted, or the cache cleared, while it was loading.
func (s *Store) load(name string) (*Corpus, error) {
	s.mu.RLock()
	gen, epoch := s.gens[name], s.epoch
	s.mu.RUnlock()

	start := s.now()
	data, info, err := s.library.Read(name)
	if err != nil {
		s.logger.Warn("corpus load failed", "corpus", name, "error", err)
		return nil, err
	}

	lines := SplitLines(data)
	corpus := &Corpus{
		Name:   name,
		Lines:  lines,
		Tokens: tokenizer.TokenizeLines(lines),
	}

	var memory int64
	for _, line := range lines {
		memory += int64(len(line))
	}

	loadedAt := s.now()
	e := &entry{
		corpus:       corpus,
		modTime:      info.ModTime(),
		size:         info.Size(),
		loadDuration: loadedAt.Sub(start),
		loadedAt:     loadedAt,
		memoryBytes:  memory,
	}

	s.mu.Lock()
	published := s.gens[name] == gen && s.epoch == epoch
	if published {
		s.entries[name] = e
	}
	s.mu.Unlock()

	if !published {
		s.logger.Debug("corpus evicted during load, not caching", "corpus", name)
		return corpus, nil
	}

	s.logger.Info("corpus loaded",
		"corpus", name,
		"lines", len(lines),
		"size", humanize.Bytes(uint64(info.Size())),
		"duration", e.loadDuration)
	return corpus, nil
}

// Evict removes one corpus from the cache. Readers already holding the
// corpus keep a valid reference.
func (s *Store) Evict(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.entries[name]
	if ok {
		delete(s.entries, name)
		s.gens[name]++
	}
	s.mu.Unlock()

	if !ok {
		return internalErrors.NewCorpusNotCachedError(name)
	}
	s.loads.Forget(name)
	s.logger.Info("corpus evicted", "corpus", name)
	return nil
}

// EvictAll removes every cached corpus and returns how many were removed.
func (s *Store) EvictAll() int {
	s.mu.Lock()
	n := len(s.entries)
	names := make([]string, 0, n)
	for name := range s.entries {
		names = append(names, name)
	}
	s.entries = make(map[string]*entry)
	s.epoch++
	s.mu.Unlock()

	for _, name := range names {
		s.loads.Forget(name)
	}
	s.logger.Info("cache cleared", "evicted", n)
	return n
}

// Len returns the number of cached corpora.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns the metadata of every cached corpus, sorted by name.
func (s *Store) Stats() []model.CacheEntry {
	s.mu.RLock()
	stats := make([]model.CacheEntry, 0, len(s.entries))
	for name, e := range s.entries {
		stat := model.CacheEntry{
			Corpus:       name,
			ModTime:      e.modTime,
			Size:         e.size,
			LineCount:    e.corpus.LineCount(),
			LoadDuration: e.loadDuration,
			LoadedAt:     e.loadedAt,
			AccessCount:  e.accessCount.Load(),
			MemoryBytes:  e.memoryBytes,
			MemoryHuman:  humanize.Bytes(uint64(e.memoryBytes)),
		}
		if ns := e.lastAccessed.Load(); ns != 0 {
			stat.LastAccessed = time.Unix(0, ns)
		}
		stats = append(stats, stat)
	}
	s.mu.RUnlock()

	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Corpus < stats[j].Corpus
	})
	return stats
}
