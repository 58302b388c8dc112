package model

// KWICHit is one keyword-in-context line: the matched token flanked by at
// most N tokens on each side.
// Match always holds exactly one token, in the casing found in the corpus.
type KWICHit struct {
	Left       []string `json:"left"`
	Match      []string `json:"match"`
	Right      []string `json:"right"`
	LineNumber int      `json:"line_number"` // 1-based position among the corpus' non-blank lines
}

// LineMatch is a raw line that contains a line-search query.
type LineMatch struct {
	LineNumber int    `json:"line_number"` // 1-based, blank lines included
	Content    string `json:"content"`
	Matches    int    `json:"matches"` // Non-overlapping occurrences in the line
}

// FileContent is the full text of a corpus file with simple counts.
type FileContent struct {
	Filename  string `json:"filename"`
	Content   string `json:"content"`
	LineCount int    `json:"line_count"`
	WordCount int    `json:"word_count"` // Whitespace-delimited fields, not tokenizer tokens
	CharCount int    `json:"char_count"` // Unicode code points
}
