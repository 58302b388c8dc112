package services

import (
	"github.com/gcbaptista/go-concordance/model"
)

// SearchQuery is a KWIC search over one corpus.
type SearchQuery struct {
	Corpus      string
	Query       string
	ContextSize *int // nil uses the configured default
	Page        int
	PageSize    int
}

// SearchResult is one page of KWIC hits, in line order.
type SearchResult struct {
	Query       string          `json:"query"`
	Corpus      string          `json:"corpus"`
	Results     []model.KWICHit `json:"results"`
	TotalHits   int             `json:"total_hits"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
	TotalPages  int             `json:"total_pages"`
	ContextSize int             `json:"context_size"`
	Took        int64           `json:"took"`     // milliseconds
	QueryId     string          `json:"query_id"` // unique UUID for this search query
}

// LineSearchQuery is a substring search over the raw lines of one corpus.
type LineSearchQuery struct {
	Corpus        string
	Query         string
	CaseSensitive bool
}

// LineSearchResult lists every raw line containing the query.
type LineSearchResult struct {
	Query             string            `json:"query"`
	Corpus            string            `json:"corpus"`
	CaseSensitive     bool              `json:"case_sensitive"`
	Results           []model.LineMatch `json:"results"`
	TotalLinesMatched int               `json:"total_lines_matched"`
	TotalMatches      int               `json:"total_matches"`
}

// Searcher defines query operations over corpora
type Searcher interface {
	Search(query SearchQuery) (SearchResult, error)
	SearchInFile(query LineSearchQuery) (LineSearchResult, error)
}

// CorpusReader defines read-only access to the corpora on disk
type CorpusReader interface {
	ListCorpora() ([]string, error)
	ViewCorpus(name string) (model.FileContent, error)
}

// CacheManager exposes the corpus cache. An empty name evicts every corpus.
type CacheManager interface {
	CacheStats() model.CacheStats
	EvictCache(name string) (int, error)
	WarmCacheAsync(names []string) (string, error) // Returns job ID
}

// Concordancer is the full service surface used by the HTTP and CLI adapters.
type Concordancer interface {
	Searcher
	CorpusReader
	CacheManager
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(target string, status *model.JobStatus) []*model.Job
}
