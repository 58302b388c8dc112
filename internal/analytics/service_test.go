package analytics

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gcbaptista/go-concordance/model"
)

// MockCorpusSource is a simple mock for testing
type MockCorpusSource struct {
	corpora []string
	cached  []model.CacheEntry
	err     error
}

func (m *MockCorpusSource) ListCorpora() ([]string, error) { return m.corpora, m.err }
func (m *MockCorpusSource) CacheStats() model.CacheStats {
	return model.CacheStats{Corpora: m.cached, TotalCorpora: len(m.cached)}
}

func newTestService(source CorpusSource) *Service {
	return NewService(source, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAnalyticsService_TrackSearchEvent(t *testing.T) {
	service := newTestService(&MockCorpusSource{corpora: []string{"alice"}})

	event := model.SearchEvent{
		Corpus:       "alice",
		Query:        "rabbit",
		SearchType:   model.SearchTypeKWIC,
		ResponseTime: 5 * time.Millisecond,
		ResultCount:  10,
	}
	service.TrackSearchEvent(event)

	if service.EventCount() != 1 {
		t.Fatalf("Expected 1 event, got %d", service.EventCount())
	}

	storedEvent := service.events[0]
	if storedEvent.Corpus != event.Corpus {
		t.Errorf("Expected Corpus %s, got %s", event.Corpus, storedEvent.Corpus)
	}
	if storedEvent.Query != event.Query {
		t.Errorf("Expected Query %s, got %s", event.Query, storedEvent.Query)
	}
	if storedEvent.Timestamp.IsZero() {
		t.Error("Expected timestamp to be set")
	}
}

func TestAnalyticsService_EventWindowIsBounded(t *testing.T) {
	service := newTestService(nil)

	for i := 0; i < maxEventsToKeep+25; i++ {
		service.TrackSearchEvent(model.SearchEvent{Query: "q"})
	}

	if service.EventCount() != maxEventsToKeep {
		t.Errorf("Expected %d retained events, got %d", maxEventsToKeep, service.EventCount())
	}
}

func TestAnalyticsService_GetDashboardData(t *testing.T) {
	source := &MockCorpusSource{
		corpora: []string{"alice", "brown"},
		cached:  []model.CacheEntry{{Corpus: "alice", LineCount: 120}},
	}
	service := newTestService(source)

	now := time.Now()
	events := []model.SearchEvent{
		{Corpus: "alice", Query: "rabbit", SearchType: model.SearchTypeKWIC, ResponseTime: 10 * time.Millisecond, ResultCount: 5, Timestamp: now.Add(-1 * time.Hour)},
		{Corpus: "alice", Query: "rabbit", SearchType: model.SearchTypeKWIC, ResponseTime: 30 * time.Millisecond, ResultCount: 5, Timestamp: now.Add(-2 * time.Hour)},
		{Corpus: "brown", Query: "jury", SearchType: model.SearchTypeLineSearch, ResponseTime: 200 * time.Millisecond, ResultCount: 0, Timestamp: now.Add(-3 * time.Hour)},
		{Corpus: "missing", Query: "x", SearchType: model.SearchTypeKWIC, ResponseTime: 0, Failed: true, Timestamp: now.Add(-4 * time.Hour)},
		// Outside the 24h window but inside the week
		{Corpus: "brown", Query: "jury", SearchType: model.SearchTypeKWIC, ResponseTime: 10 * time.Millisecond, ResultCount: 1, Timestamp: now.Add(-48 * time.Hour)},
		// Outside every window
		{Corpus: "alice", Query: "ancient", SearchType: model.SearchTypeKWIC, Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, event := range events {
		service.TrackSearchEvent(event)
	}

	dashboard := service.GetDashboardData()

	if dashboard.TotalSearches != 4 {
		t.Errorf("Expected 4 searches in the last 24h, got %d", dashboard.TotalSearches)
	}
	if dashboard.FailedSearches != 1 {
		t.Errorf("Expected 1 failed search, got %d", dashboard.FailedSearches)
	}
	if dashboard.ZeroHitSearches != 1 {
		t.Errorf("Expected 1 zero-hit search, got %d", dashboard.ZeroHitSearches)
	}
	if dashboard.AvgResponseTime != 60 {
		t.Errorf("Expected average response time 60ms, got %d", dashboard.AvgResponseTime)
	}
	if dashboard.ActiveCorpora != 2 || dashboard.CachedCorpora != 1 {
		t.Errorf("Expected 2 active and 1 cached corpora, got %d and %d", dashboard.ActiveCorpora, dashboard.CachedCorpora)
	}

	if dashboard.SearchTypes.KWIC != 3 || dashboard.SearchTypes.LineSearch != 1 {
		t.Errorf("Unexpected search type stats: %+v", dashboard.SearchTypes)
	}

	dist := dashboard.ResponseTimeDistribution
	if dist.Bucket0To25ms != 2 || dist.Bucket25To50ms != 1 || dist.Bucket100msPlus != 1 {
		t.Errorf("Unexpected response time distribution: %+v", dist)
	}
	if dist.Percentage0To25 != 50 {
		t.Errorf("Expected 50%% in the fastest bucket, got %v", dist.Percentage0To25)
	}

	if len(dashboard.PopularSearches) == 0 {
		t.Fatal("Expected some popular searches, got none")
	}
	// rabbit and jury both have 2 searches in the week; ties sort by query
	if dashboard.PopularSearches[0].Query != "jury" || dashboard.PopularSearches[1].Query != "rabbit" {
		t.Errorf("Unexpected popular searches order: %+v", dashboard.PopularSearches)
	}
	for _, popular := range dashboard.PopularSearches {
		if popular.Query == "ancient" {
			t.Error("Searches older than a week must not be popular")
		}
	}

	usage := map[string]model.CorpusUsage{}
	for _, u := range dashboard.CorpusUsage {
		usage[u.Corpus] = u
	}
	if usage["alice"].SearchCount != 2 || !usage["alice"].Cached || usage["alice"].LineCount != 120 {
		t.Errorf("Unexpected usage for alice: %+v", usage["alice"])
	}
	if usage["brown"].SearchCount != 2 || usage["brown"].Cached {
		t.Errorf("Unexpected usage for brown: %+v", usage["brown"])
	}
	if _, ok := usage["missing"]; ok {
		t.Error("Corpora that are not on disk must not appear in usage")
	}
}

func TestAnalyticsService_EmptyDashboard(t *testing.T) {
	service := newTestService(&MockCorpusSource{err: errors.New("unreadable")})

	dashboard := service.GetDashboardData()
	if dashboard.TotalSearches != 0 || dashboard.AvgResponseTime != 0 {
		t.Errorf("Expected an empty dashboard, got %+v", dashboard)
	}
	if dashboard.CorpusUsage == nil || len(dashboard.CorpusUsage) != 0 {
		t.Errorf("Expected empty corpus usage, got %v", dashboard.CorpusUsage)
	}
	if dashboard.PopularSearches == nil {
		t.Error("Expected a non-nil popular searches slice")
	}
}
