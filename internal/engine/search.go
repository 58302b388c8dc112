package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-concordance/internal/corpus"
	internalErrors "github.com/gcbaptista/go-concordance/internal/errors"
	"github.com/gcbaptista/go-concordance/internal/kwic"
	"github.com/gcbaptista/go-concordance/internal/linesearch"
	"github.com/gcbaptista/go-concordance/internal/pagination"
	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

// Search finds the first occurrence of the query token on every line of a
// corpus and returns the requested page of hits in line order.
func (e *Engine) Search(q services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	if err := corpus.ValidateName(q.Corpus); err != nil {
		return services.SearchResult{}, err
	}

	query := strings.TrimSpace(q.Query)
	if query == "" {
		return services.SearchResult{}, internalErrors.NewInvalidQueryError(q.Query)
	}

	contextSize, err := e.resolveContextSize(q.ContextSize)
	if err != nil {
		return services.SearchResult{}, err
	}
	pageSize, err := e.resolvePageSize(q.PageSize)
	if err != nil {
		return services.SearchResult{}, err
	}
	if q.Page < 1 {
		return services.SearchResult{}, internalErrors.NewInvalidPageError(q.Page, 0)
	}

	c, err := e.store.Get(q.Corpus)
	if err != nil {
		return services.SearchResult{}, err
	}

	hits := make([]model.KWICHit, 0)
	for i, tokens := range c.Tokens {
		hit, ok := kwic.Match(tokens, query, contextSize)
		if !ok {
			continue
		}
		hit.LineNumber = i + 1
		hits = append(hits, hit)
	}

	page, err := pagination.Paginate(hits, q.Page, pageSize)
	if err != nil {
		return services.SearchResult{}, err
	}

	return services.SearchResult{
		Query:       query,
		Corpus:      q.Corpus,
		Results:     page.Items,
		TotalHits:   page.Total,
		Page:        page.Page,
		PageSize:    page.PageSize,
		TotalPages:  page.TotalPages,
		ContextSize: contextSize,
		Took:        time.Since(startTime).Milliseconds(),
		QueryId:     uuid.New().String(),
	}, nil
}

// SearchInFile returns every raw line of a corpus containing the query as a
// substring. The file is read fresh on every call.
func (e *Engine) SearchInFile(q services.LineSearchQuery) (services.LineSearchResult, error) {
	if err := corpus.ValidateName(q.Corpus); err != nil {
		return services.LineSearchResult{}, err
	}
	if strings.TrimSpace(q.Query) == "" {
		return services.LineSearchResult{}, internalErrors.NewInvalidQueryError(q.Query)
	}

	data, _, err := e.library.Read(q.Corpus)
	if err != nil {
		return services.LineSearchResult{}, err
	}

	found := linesearch.Search(string(data), q.Query, q.CaseSensitive)
	return services.LineSearchResult{
		Query:             q.Query,
		Corpus:            q.Corpus,
		CaseSensitive:     q.CaseSensitive,
		Results:           found.Lines,
		TotalLinesMatched: len(found.Lines),
		TotalMatches:      found.TotalMatches,
	}, nil
}

func (e *Engine) resolveContextSize(requested *int) (int, error) {
	if requested == nil {
		return e.settings.DefaultContextSize, nil
	}
	switch {
	case *requested < 0:
		return 0, internalErrors.NewValidationError("context_size", "must not be negative")
	case *requested > e.settings.MaxContextSize:
		return 0, internalErrors.NewValidationError("context_size", "must not exceed "+strconv.Itoa(e.settings.MaxContextSize))
	}
	return *requested, nil
}

func (e *Engine) resolvePageSize(requested int) (int, error) {
	switch {
	case requested == 0:
		return e.settings.DefaultPageSize, nil
	case requested < 0:
		return 0, internalErrors.NewValidationError("page_size", "must be at least 1")
	case requested > e.settings.MaxPageSize:
		return 0, internalErrors.NewValidationError("page_size", "must not exceed "+strconv.Itoa(e.settings.MaxPageSize))
	}
	return requested, nil
}
