package model

import "time"

// CacheEntry describes one cached corpus.
type CacheEntry struct {
	Corpus       string        `json:"corpus"`
	ModTime      time.Time     `json:"mod_time"`
	Size         int64         `json:"size_bytes"`
	LineCount    int           `json:"line_count"`
	LoadDuration time.Duration `json:"load_duration_ns"`
	LoadedAt     time.Time     `json:"loaded_at"`
	AccessCount  int64         `json:"access_count"`
	LastAccessed time.Time     `json:"last_accessed"`
	MemoryBytes  int64         `json:"memory_bytes"` // Sum of line byte lengths
	MemoryHuman  string        `json:"memory_human"`
}

// CacheStats is the cache introspection report.
type CacheStats struct {
	Corpora          []CacheEntry `json:"corpora"`
	TotalCorpora     int          `json:"total_corpora"`
	TotalLines       int          `json:"total_lines"`
	TotalMemoryBytes int64        `json:"total_memory_bytes"`
	TotalMemoryHuman string       `json:"total_memory_human"`
}
