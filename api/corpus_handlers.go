package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCorporaHandler lists the corpora in the samples directory.
func (api *API) ListCorporaHandler(c *gin.Context) {
	names, err := api.engine.ListCorpora()
	if err != nil {
		SendInternalError(c, "list corpora", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"corpora": names,
		"total":   len(names),
	})
}

// ViewCorpusHandler returns the full text of a corpus with line, word and
// character counts.
func (api *API) ViewCorpusHandler(c *gin.Context) {
	corpusName := c.Param("corpus")

	if result := ValidateCorpusName(corpusName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	content, err := api.engine.ViewCorpus(corpusName)
	if err != nil {
		SendEngineError(c, "view corpus", err)
		return
	}

	c.JSON(http.StatusOK, content)
}
