package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-concordance/config"
	"github.com/gcbaptista/go-concordance/internal/engine"
	testhelpers "github.com/gcbaptista/go-concordance/internal/testing"
	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

func setupTestEngine(t *testing.T) (*engine.Engine, string) {
	t.Helper()

	dir := testhelpers.CreateSamplesDir(t)
	eng, err := engine.NewEngine(config.Settings{SamplesDir: dir, WorkerCount: 2},
		engine.WithLogger(discardLogger()))
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	return eng, dir
}

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(eng, discardLogger())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(router *gin.Engine, method, target string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestStatusHandlers(t *testing.T) {
	eng, _ := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := doRequest(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode[map[string]any](t, w)["status"])

	w = doRequest(router, http.MethodGet, "/api", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", decode[map[string]any](t, w)["status"])
}

func TestMiddleware(t *testing.T) {
	eng, _ := setupTestEngine(t)
	router := setupTestRouter(eng)

	w := doRequest(router, http.MethodOptions, "/search", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(router, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/view/missing", nil)
	req.Header.Set(requestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(requestIDHeader))
	assert.Equal(t, "fixed-id", decode[APIError](t, w).RequestID, "errors carry the request ID")
}

func TestListCorporaHandler(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "zeta", "z")
	testhelpers.WriteCorpus(t, dir, "alpha", "a")

	w := doRequest(router, http.MethodGet, "/corpora", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Corpora []string `json:"corpora"`
		Total   int      `json:"total"`
	}](t, w)
	assert.Equal(t, []string{"alpha", "zeta"}, body.Corpora)
	assert.Equal(t, 2, body.Total)
}

func TestSearchHandler(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "sample", testhelpers.SampleText)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedCode   ErrorCode
		expectedHits   int
	}{
		{"basic search", "/search?corpus=sample&query=fox", http.StatusOK, "", 3},
		{"custom context and paging", "/search?corpus=sample&query=fox&context_size=1&page=2&page_size=2", http.StatusOK, "", 3},
		{"no hits", "/search?corpus=sample&query=zebra", http.StatusOK, "", 0},
		{"missing corpus param", "/search?query=fox", http.StatusBadRequest, ErrorCodeValidationFailed, 0},
		{"unknown corpus", "/search?corpus=nope&query=fox", http.StatusNotFound, ErrorCodeCorpusNotFound, 0},
		{"path traversal", "/search?corpus=..%2Fsample&query=fox", http.StatusBadRequest, ErrorCodeInvalidName, 0},
		{"blank query", "/search?corpus=sample&query=%20%20", http.StatusBadRequest, ErrorCodeInvalidQuery, 0},
		{"page past the end", "/search?corpus=sample&query=fox&page=5", http.StatusBadRequest, ErrorCodeInvalidPage, 0},
		{"page zero", "/search?corpus=sample&query=fox&page=0", http.StatusBadRequest, ErrorCodeInvalidPage, 0},
		{"huge page with no hits", "/search?corpus=sample&query=zebra&page=9223372036854775807", http.StatusBadRequest, ErrorCodeInvalidPage, 0},
		{"negative context", "/search?corpus=sample&query=fox&context_size=-1", http.StatusBadRequest, ErrorCodeValidationFailed, 0},
		{"page size too large", "/search?corpus=sample&query=fox&page_size=1000", http.StatusBadRequest, ErrorCodeValidationFailed, 0},
		{"page size zero", "/search?corpus=sample&query=fox&page_size=0", http.StatusBadRequest, ErrorCodeValidationFailed, 0},
		{"non-numeric page", "/search?corpus=sample&query=fox&page=two", http.StatusBadRequest, ErrorCodeValidationFailed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.target, nil)
			require.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decode[APIError](t, w).Code)
				return
			}

			result := decode[services.SearchResult](t, w)
			assert.Equal(t, tt.expectedHits, result.TotalHits)
			assert.NotNil(t, result.Results)
		})
	}
}

func TestSearchHandler_ResponseShape(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "three", "This is line one.\nThis is line two.\nThis is line three.\n")

	w := doRequest(router, http.MethodGet, "/search?corpus=three&query=two&context_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[map[string]any](t, w)
	for _, key := range []string{"query", "corpus", "results", "total_hits", "page", "page_size", "total_pages", "context_size", "took", "query_id"} {
		assert.Contains(t, body, key)
	}

	result := decode[services.SearchResult](t, w)
	require.Len(t, result.Results, 1)
	assert.Equal(t, model.KWICHit{
		Left:       []string{"is", "line"},
		Match:      []string{"two"},
		Right:      []string{"."},
		LineNumber: 2,
	}, result.Results[0])
}

func TestViewCorpusHandler(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "small", "one two\nthree\n")

	w := doRequest(router, http.MethodGet, "/view/small", nil)
	require.Equal(t, http.StatusOK, w.Code)

	content := decode[model.FileContent](t, w)
	assert.Equal(t, "small.txt", content.Filename)
	assert.Equal(t, 3, content.LineCount)
	assert.Equal(t, 3, content.WordCount)
	assert.Equal(t, 14, content.CharCount)

	w = doRequest(router, http.MethodGet, "/view/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/view/..", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewCorpusHandler_LoadError(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "latin1", "caf\xe9\n")

	w := doRequest(router, http.MethodGet, "/view/latin1", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, ErrorCodeLoadFailed, decode[APIError](t, w).Code)
}

func TestSearchInFileHandler(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "fox", "The quick brown fox\nThe lazy dog\nFox jumps over")

	w := doRequest(router, http.MethodGet, "/search-in-file/fox?query=fox", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[services.LineSearchResult](t, w)
	assert.Equal(t, 2, result.TotalLinesMatched)
	assert.False(t, result.CaseSensitive)

	w = doRequest(router, http.MethodGet, "/search-in-file/fox?query=Fox&case_sensitive=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	result = decode[services.LineSearchResult](t, w)
	assert.Equal(t, 1, result.TotalLinesMatched)
	assert.True(t, result.CaseSensitive)

	w = doRequest(router, http.MethodGet, "/search-in-file/fox?query=fox&case_sensitive=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/search-in-file/fox?query=", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorCodeInvalidQuery, decode[APIError](t, w).Code)

	w = doRequest(router, http.MethodGet, "/search-in-file/missing?query=x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCacheHandlers(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "one", "abc\n")
	testhelpers.WriteCorpus(t, dir, "two", "def\n")

	for _, name := range []string{"one", "two"} {
		w := doRequest(router, http.MethodGet, "/search?corpus="+name+"&query=abc", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/cache/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[model.CacheStats](t, w)
	assert.Equal(t, 2, stats.TotalCorpora)
	assert.Equal(t, "one", stats.Corpora[0].Corpus)
	assert.Equal(t, int64(1), stats.Corpora[0].AccessCount)

	w = doRequest(router, http.MethodDelete, "/cache/one", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["evicted"])

	w = doRequest(router, http.MethodDelete, "/cache/one", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "evicting an uncached corpus")

	w = doRequest(router, http.MethodDelete, "/cache", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["evicted"])

	w = doRequest(router, http.MethodDelete, "/cache", nil)
	require.Equal(t, http.StatusOK, w.Code, "clearing an empty cache succeeds")
}

func TestWarmCacheAndJobHandlers(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "one", "abc\n")
	testhelpers.WriteCorpus(t, dir, "two", "def\n")

	w := doRequest(router, http.MethodPost, "/cache/warm", nil)
	require.Equal(t, http.StatusAccepted, w.Code, "body: %s", w.Body.String())
	jobID, _ := decode[map[string]any](t, w)["job_id"].(string)
	require.NotEmpty(t, jobID)

	job := testhelpers.WaitForJob(t, eng, jobID, testhelpers.DefaultJobPollingOptions())
	testhelpers.AssertJobCompleted(t, job, model.JobTypeWarmCache, model.AllCorpora)

	w = doRequest(router, http.MethodGet, "/jobs/"+jobID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.JobStatusCompleted, decode[model.Job](t, w).Status)

	w = doRequest(router, http.MethodGet, "/jobs/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, ErrorCodeJobNotFound, decode[APIError](t, w).Code)

	w = doRequest(router, http.MethodGet, "/jobs?status=completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["total"])

	w = doRequest(router, http.MethodGet, "/jobs?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/jobs/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["success_rate"])

	body, _ := json.Marshal(WarmCacheRequest{Corpora: []string{"one"}})
	w = doRequest(router, http.MethodPost, "/cache/warm", body)
	require.Equal(t, http.StatusAccepted, w.Code)

	body, _ = json.Marshal(WarmCacheRequest{Corpora: []string{"../etc"}})
	w = doRequest(router, http.MethodPost, "/cache/warm", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, _ = json.Marshal(WarmCacheRequest{Corpora: []string{" padded "}})
	w = doRequest(router, http.MethodPost, "/cache/warm", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/cache/warm", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, ErrorCodeInvalidJSON, decode[APIError](t, w).Code)
}

func TestAnalyticsHandler(t *testing.T) {
	eng, dir := setupTestEngine(t)
	router := setupTestRouter(eng)
	testhelpers.WriteCorpus(t, dir, "sample", testhelpers.SampleText)

	doRequest(router, http.MethodGet, "/search?corpus=sample&query=fox", nil)
	doRequest(router, http.MethodGet, "/search?corpus=sample&query=fox", nil)
	doRequest(router, http.MethodGet, "/search?corpus=sample&query=", nil)
	doRequest(router, http.MethodGet, "/search-in-file/sample?query=dog", nil)

	w := doRequest(router, http.MethodGet, "/analytics", nil)
	require.Equal(t, http.StatusOK, w.Code)

	dashboard := decode[model.AnalyticsDashboard](t, w)
	assert.Equal(t, 4, dashboard.TotalSearches)
	assert.Equal(t, 1, dashboard.FailedSearches)
	assert.Equal(t, 3, dashboard.SearchTypes.KWIC)
	assert.Equal(t, 1, dashboard.SearchTypes.LineSearch)
	require.NotEmpty(t, dashboard.PopularSearches)
	assert.Equal(t, "fox", dashboard.PopularSearches[0].Query)
	assert.Equal(t, 2, dashboard.PopularSearches[0].SearchCount)
	require.Len(t, dashboard.CorpusUsage, 1)
	assert.True(t, dashboard.CorpusUsage[0].Cached)
	assert.Equal(t, 4, dashboard.CorpusUsage[0].SearchCount)
}
