package model

import "time"

// Search types recorded by analytics.
const (
	SearchTypeKWIC       = "kwic"
	SearchTypeLineSearch = "line_search"
)

// SearchEvent represents a single search event for analytics tracking
type SearchEvent struct {
	Corpus       string        `json:"corpus"`
	Query        string        `json:"query"`
	SearchType   string        `json:"search_type"` // SearchTypeKWIC or SearchTypeLineSearch
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Failed       bool          `json:"failed,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularSearch represents aggregated data for popular search terms
type PopularSearch struct {
	Query       string `json:"query"`
	SearchCount int    `json:"search_count"`
}

// CorpusUsage represents search activity for a specific corpus
type CorpusUsage struct {
	Corpus      string `json:"corpus"`
	SearchCount int    `json:"search_count"`
	Cached      bool   `json:"cached"`
	LineCount   int    `json:"line_count,omitempty"`
}

// ResponseTimeDistribution represents response time distribution buckets
type ResponseTimeDistribution struct {
	Bucket0To25ms     int     `json:"bucket_0_25ms"`
	Bucket25To50ms    int     `json:"bucket_25_50ms"`
	Bucket50To100ms   int     `json:"bucket_50_100ms"`
	Bucket100msPlus   int     `json:"bucket_100ms_plus"`
	Percentage0To25   float64 `json:"percentage_0_25"`
	Percentage25To50  float64 `json:"percentage_25_50"`
	Percentage50To100 float64 `json:"percentage_50_100"`
	Percentage100Plus float64 `json:"percentage_100_plus"`
}

// SearchTypeStats represents statistics for different search types
type SearchTypeStats struct {
	KWIC       int `json:"kwic"`
	LineSearch int `json:"line_search"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	// Summary metrics, last 24 hours
	TotalSearches   int   `json:"total_searches"`
	FailedSearches  int   `json:"failed_searches"`
	AvgResponseTime int64 `json:"avg_response_time"` // in milliseconds
	ZeroHitSearches int   `json:"zero_hit_searches"`
	ActiveCorpora   int   `json:"active_corpora"`
	CachedCorpora   int   `json:"cached_corpora"`

	// Detailed analytics
	PopularSearches          []PopularSearch          `json:"popular_searches"`
	CorpusUsage              []CorpusUsage            `json:"corpus_usage"`
	ResponseTimeDistribution ResponseTimeDistribution `json:"response_time_distribution"`
	SearchTypes              SearchTypeStats          `json:"search_types"`
}
