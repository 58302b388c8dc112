package analytics

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-concordance/model"
)

const (
	maxEventsToKeep    = 10000 // Keep last 10k events for performance
	maxPopularSearches = 5
)

// CorpusSource is the view of the corpus service analytics needs to report
// usage against the corpora on disk and in the cache.
type CorpusSource interface {
	ListCorpora() ([]string, error)
	CacheStats() model.CacheStats
}

// Service keeps an in-memory window of search events and summarizes them.
// Events are lost on restart.
type Service struct {
	mutex   sync.RWMutex
	events  []model.SearchEvent
	corpora CorpusSource
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a new analytics service. A nil logger falls back to
// slog.Default().
func NewService(corpora CorpusSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		events:  make([]model.SearchEvent, 0),
		corpora: corpora,
		logger:  logger.With("component", "analytics"),
		now:     time.Now,
	}
}

// TrackSearchEvent records a new search event. A zero timestamp is set to
// the current time.
func (s *Service) TrackSearchEvent(event model.SearchEvent) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}
}

// EventCount returns the number of retained events.
func (s *Service) EventCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.events)
}

// GetDashboardData summarizes the last 24 hours of searches. Popular queries
// and per-corpus usage cover the last 7 days.
func (s *Service) GetDashboardData() model.AnalyticsDashboard {
	s.mutex.RLock()
	last24h := filterEventsAfter(s.events, s.now().Add(-24*time.Hour))
	lastWeek := filterEventsAfter(s.events, s.now().Add(-7*24*time.Hour))
	s.mutex.RUnlock()

	dashboard := model.AnalyticsDashboard{
		TotalSearches:            len(last24h),
		AvgResponseTime:          calculateAvgResponseTime(last24h),
		PopularSearches:          getPopularSearches(lastWeek),
		ResponseTimeDistribution: getResponseTimeDistribution(last24h),
		SearchTypes:              getSearchTypeStats(last24h),
	}

	for _, event := range last24h {
		if event.Failed {
			dashboard.FailedSearches++
		} else if event.ResultCount == 0 {
			dashboard.ZeroHitSearches++
		}
	}

	dashboard.CorpusUsage = s.getCorpusUsage(lastWeek)
	dashboard.ActiveCorpora = len(dashboard.CorpusUsage)
	for _, usage := range dashboard.CorpusUsage {
		if usage.Cached {
			dashboard.CachedCorpora++
		}
	}

	return dashboard
}

// filterEventsAfter returns events after the given time
func filterEventsAfter(events []model.SearchEvent, after time.Time) []model.SearchEvent {
	var filtered []model.SearchEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SearchEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

// getPopularSearches returns the most frequent queries, ties broken alphabetically
func getPopularSearches(events []model.SearchEvent) []model.PopularSearch {
	queryCounts := make(map[string]int)
	for _, event := range events {
		if event.Query != "" {
			queryCounts[event.Query]++
		}
	}

	popular := make([]model.PopularSearch, 0, len(queryCounts))
	for query, count := range queryCounts {
		popular = append(popular, model.PopularSearch{Query: query, SearchCount: count})
	}

	sort.Slice(popular, func(i, j int) bool {
		if popular[i].SearchCount != popular[j].SearchCount {
			return popular[i].SearchCount > popular[j].SearchCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > maxPopularSearches {
		popular = popular[:maxPopularSearches]
	}
	return popular
}

// getCorpusUsage returns one entry per corpus on disk with its search count
// and cache state.
func (s *Service) getCorpusUsage(events []model.SearchEvent) []model.CorpusUsage {
	searchCounts := make(map[string]int)
	for _, event := range events {
		searchCounts[event.Corpus]++
	}

	usage := make([]model.CorpusUsage, 0)
	if s.corpora == nil {
		return usage
	}

	names, err := s.corpora.ListCorpora()
	if err != nil {
		s.logger.Warn("failed to list corpora for analytics", "error", err)
		return usage
	}

	cached := make(map[string]model.CacheEntry)
	for _, entry := range s.corpora.CacheStats().Corpora {
		cached[entry.Corpus] = entry
	}

	for _, name := range names {
		entry, isCached := cached[name]
		usage = append(usage, model.CorpusUsage{
			Corpus:      name,
			SearchCount: searchCounts[name],
			Cached:      isCached,
			LineCount:   entry.LineCount,
		})
	}
	return usage
}

// getResponseTimeDistribution returns response time distribution
func getResponseTimeDistribution(events []model.SearchEvent) model.ResponseTimeDistribution {
	dist := model.ResponseTimeDistribution{}
	total := len(events)

	if total == 0 {
		return dist
	}

	for _, event := range events {
		ms := event.ResponseTime.Milliseconds()
		switch {
		case ms <= 25:
			dist.Bucket0To25ms++
		case ms <= 50:
			dist.Bucket25To50ms++
		case ms <= 100:
			dist.Bucket50To100ms++
		default:
			dist.Bucket100msPlus++
		}
	}

	// Calculate percentages
	dist.Percentage0To25 = float64(dist.Bucket0To25ms) / float64(total) * 100
	dist.Percentage25To50 = float64(dist.Bucket25To50ms) / float64(total) * 100
	dist.Percentage50To100 = float64(dist.Bucket50To100ms) / float64(total) * 100
	dist.Percentage100Plus = float64(dist.Bucket100msPlus) / float64(total) * 100

	return dist
}

// getSearchTypeStats counts events per search type
func getSearchTypeStats(events []model.SearchEvent) model.SearchTypeStats {
	stats := model.SearchTypeStats{}

	for _, event := range events {
		switch event.SearchType {
		case model.SearchTypeKWIC:
			stats.KWIC++
		case model.SearchTypeLineSearch:
			stats.LineSearch++
		}
	}

	return stats
}
