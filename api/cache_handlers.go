package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// WarmCacheRequest lists the corpora to load. An empty list loads every corpus.
type WarmCacheRequest struct {
	Corpora []string `json:"corpora"`
}

// CacheStatsHandler returns metadata for every cached corpus.
func (api *API) CacheStatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.CacheStats())
}

// ClearCacheHandler evicts every cached corpus.
func (api *API) ClearCacheHandler(c *gin.Context) {
	removed, err := api.engine.EvictCache("")
	if err != nil {
		SendEngineError(c, "clear cache", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cache cleared",
		"evicted": removed,
	})
}

// EvictCorpusHandler evicts one corpus from the cache.
func (api *API) EvictCorpusHandler(c *gin.Context) {
	corpusName := c.Param("corpus")

	if result := ValidateCorpusName(corpusName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	removed, err := api.engine.EvictCache(corpusName)
	if err != nil {
		SendEngineError(c, "evict corpus", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Corpus '" + corpusName + "' evicted from cache",
		"evicted": removed,
	})
}

// WarmCacheHandler starts a background job that loads corpora into the cache.
// Request Body (optional): WarmCacheRequest
func (api *API) WarmCacheHandler(c *gin.Context) {
	var req WarmCacheRequest
	result := ValidateJSONBinding(c, &req)
	if result.HasErrors() {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, result.Errors[0].Message)
		return
	}

	for i, name := range req.Corpora {
		for _, e := range ValidateCorpusName(name).Errors {
			result.AddError("corpora["+strconv.Itoa(i)+"]", e.Message)
		}
	}
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	jobID, err := api.engine.WarmCacheAsync(req.Corpora)
	if err != nil {
		SendEngineError(c, "warm cache", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "accepted",
		"message": "Cache warm-up started",
		"job_id":  jobID,
	})
}
