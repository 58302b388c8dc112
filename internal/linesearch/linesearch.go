// Package linesearch finds raw lines containing a substring. It works on the
// untokenized file text and keeps blank lines in the numbering.
package linesearch

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gcbaptista/go-concordance/model"
)

// Result is the outcome of a line search.
type Result struct {
	Lines        []model.LineMatch
	TotalMatches int
}

// SplitRawLines splits text into lines numbered from 1. Line terminators
// ("\n" or "\r\n") are removed; a final terminator does not start a new line.
func SplitRawLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Search returns every line of text that contains query, in line order, with
// the number of non-overlapping occurrences per line. Unless caseSensitive
// is set, both sides are lowercased before comparing.
func Search(text, query string, caseSensitive bool) Result {
	result := Result{Lines: []model.LineMatch{}}
	if query == "" {
		return result
	}

	needle := query
	var fold cases.Caser
	if !caseSensitive {
		// A Caser is stateful; one per call keeps Search safe for concurrent use.
		fold = cases.Lower(language.Und)
		needle = fold.String(query)
	}

	for i, line := range SplitRawLines(text) {
		haystack := line
		if !caseSensitive {
			haystack = fold.String(line)
		}

		n := strings.Count(haystack, needle)
		if n == 0 {
			continue
		}

		result.Lines = append(result.Lines, model.LineMatch{
			LineNumber: i + 1,
			Content:    line,
			Matches:    n,
		})
		result.TotalMatches += n
	}

	return result
}
