package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-concordance/internal/tokenizer"
	"github.com/gcbaptista/go-concordance/model"
	"github.com/gcbaptista/go-concordance/services"
)

func init() {
	search := &cobra.Command{
		Use:   "search <corpus> <word>",
		Short: "Show every line containing a word, with the words around it",
		Args:  cobra.ExactArgs(2),
		RunE:  runSearch,
	}
	search.Flags().IntP("context", "c", -1, "Tokens on each side of the hit (default: 5)")
	search.Flags().Int("page", 1, "Page number")
	search.Flags().Int("page-size", 0, "Hits per page (default: 10)")
	RootCmd.AddCommand(search)

	grep := &cobra.Command{
		Use:   "grep <corpus> <text>",
		Short: "Show every raw line containing a substring",
		Args:  cobra.ExactArgs(2),
		RunE:  runGrep,
	}
	grep.Flags().BoolP("case-sensitive", "s", false, "Match case exactly")
	RootCmd.AddCommand(grep)
}

func runSearch(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")

	q := services.SearchQuery{
		Corpus:   args[0],
		Query:    args[1],
		Page:     page,
		PageSize: pageSize,
	}
	if cmd.Flags().Changed("context") {
		contextSize, _ := cmd.Flags().GetInt("context")
		q.ContextSize = &contextSize
	}

	eng, err := openEngine(loadSettings())
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	result, err := eng.Search(q)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if textOutput() {
		writeHits(os.Stdout, result)
		return nil
	}
	return printJSON(result)
}

func runGrep(cmd *cobra.Command, args []string) error {
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")

	eng, err := openEngine(loadSettings())
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	defer eng.Close()

	result, err := eng.SearchInFile(services.LineSearchQuery{
		Corpus:        args[0],
		Query:         args[1],
		CaseSensitive: caseSensitive,
	})
	if err != nil {
		return fmt.Errorf("grep: %w", err)
	}

	if textOutput() {
		writeLineMatches(os.Stdout, result)
		return nil
	}
	return printJSON(result)
}

// writeHits prints one concordance line per hit with the matches aligned in
// a single column.
func writeHits(w io.Writer, result services.SearchResult) {
	lefts := make([]string, len(result.Results))
	width := 0
	for i, hit := range result.Results {
		lefts[i] = tokenizer.Join(hit.Left)
		width = max(width, utf8.RuneCountInString(lefts[i]))
	}

	for i, hit := range result.Results {
		fmt.Fprintln(w, formatHit(hit, lefts[i], width))
	}
	fmt.Fprintf(w, "%d hits, page %d of %d\n", result.TotalHits, result.Page, result.TotalPages)
}

func formatHit(hit model.KWICHit, left string, width int) string {
	pad := strings.Repeat(" ", width-utf8.RuneCountInString(left))
	return fmt.Sprintf("%6d  %s%s [%s] %s", hit.LineNumber, pad, left,
		strings.Join(hit.Match, " "), tokenizer.Join(hit.Right))
}

func writeLineMatches(w io.Writer, result services.LineSearchResult) {
	for _, line := range result.Results {
		fmt.Fprintf(w, "%6d: %s\n", line.LineNumber, line.Content)
	}
	fmt.Fprintf(w, "%d lines, %d matches\n", result.TotalLinesMatched, result.TotalMatches)
}
