package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

// SearchHandler handles KWIC searches.
// Query: corpus, query, context_size (default 5), page (default 1), page_size (default 10)
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	var req SearchRequest
	if result := ValidateQueryBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateCorpusName(req.Corpus); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	page, pageSize, result := ValidatePagination(req.Page, req.PageSize)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	searchResult, err := api.engine.Search(services.SearchQuery{
		Corpus:      req.Corpus,
		Query:       req.Query,
		ContextSize: req.ContextSize,
		Page:        page,
		PageSize:    pageSize,
	})

	api.trackSearch(model.SearchEvent{
		Corpus:       req.Corpus,
		Query:        req.Query,
		SearchType:   model.SearchTypeKWIC,
		ResponseTime: time.Since(startTime),
		ResultCount:  searchResult.TotalHits,
		Failed:       err != nil,
	})

	if err != nil {
		SendEngineError(c, "search", err)
		return
	}

	c.JSON(http.StatusOK, searchResult)
}

// SearchInFileHandler handles substring searches over the raw lines of a corpus.
// Query: query, case_sensitive (default false)
func (api *API) SearchInFileHandler(c *gin.Context) {
	startTime := time.Now()
	corpusName := c.Param("corpus")

	if result := ValidateCorpusName(corpusName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	caseSensitive, result := ParseBoolParam(c, "case_sensitive", false)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	query := c.Query("query")
	lineResult, err := api.engine.SearchInFile(services.LineSearchQuery{
		Corpus:        corpusName,
		Query:         query,
		CaseSensitive: caseSensitive,
	})

	api.trackSearch(model.SearchEvent{
		Corpus:       corpusName,
		Query:        query,
		SearchType:   model.SearchTypeLineSearch,
		ResponseTime: time.Since(startTime),
		ResultCount:  lineResult.TotalLinesMatched,
		Failed:       err != nil,
	})

	if err != nil {
		SendEngineError(c, "search in file", err)
		return
	}

	c.JSON(http.StatusOK, lineResult)
}

func (api *API) trackSearch(event model.SearchEvent) {
	api.analytics.TrackSearchEvent(event)
}
