// Package tokenizer splits corpus lines into word and punctuation tokens.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	// KindOther is a single punctuation or symbol rune.
	KindOther Kind = iota
	// KindWord is a maximal run of word characters.
	KindWord
)

func (k Kind) String() string {
	if k == KindWord {
		return "word"
	}
	return "other"
}

// IsWordRune reports whether r belongs to a word token: letters, numbers
// and connector punctuation such as '_'. Combining marks are not word runes,
// so decomposed text splits at them; precomposed text does not.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Pc, r)
}

// Tokenize converts a line into a slice of tokens.
// Each maximal run of word runes is one token, every other non-whitespace
// rune is a token of its own, and whitespace is dropped. Tokens are
// substrings of line, so joining them reproduces line minus its whitespace.
func Tokenize(line string) []string {
	tokens := make([]string, 0, len(line)/4) // Initialize as empty slice, not nil

	wordStart := -1
	for i, r := range line {
		if IsWordRune(r) {
			if wordStart < 0 {
				wordStart = i
			}
			continue
		}

		if wordStart >= 0 {
			tokens = append(tokens, line[wordStart:i])
			wordStart = -1
		}

		if unicode.IsSpace(r) {
			continue
		}
		// An invalid byte decodes as RuneError but occupies one byte.
		_, size := utf8.DecodeRuneInString(line[i:])
		tokens = append(tokens, line[i:i+size])
	}

	if wordStart >= 0 {
		tokens = append(tokens, line[wordStart:])
	}
	return tokens
}

// TokenizeLines tokenizes every line, keeping positions aligned with lines.
func TokenizeLines(lines []string) [][]string {
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = Tokenize(line)
	}
	return out
}

// Classify reports whether token is a word or a punctuation/symbol token.
func Classify(token string) Kind {
	r, _ := utf8.DecodeRuneInString(token)
	if token != "" && IsWordRune(r) {
		return KindWord
	}
	return KindOther
}

// Join rebuilds a display string from tokens, attaching punctuation to the
// preceding word the way concordance lines are usually printed.
func Join(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && Classify(tok) == KindWord {
			b.WriteByte(' ')
		}
		b.WriteString(tok)
	}
	return b.String()
}
