// Package kwic extracts keyword-in-context windows from token sequences.
package kwic

import (
	"strings"

	"github.com/gcbaptista/go-concordance/model"
)

// Match scans tokens in order and returns a hit for the first token equal to
// query under case folding. Only the first occurrence is reported; later
// occurrences on the same line are ignored.
//
// The hit's Left and Right windows hold at most contextSize tokens and are
// clipped at the ends of tokens. LineNumber is left at zero for the caller
// to fill in. The second return value is false when nothing matched.
func Match(tokens []string, query string, contextSize int) (model.KWICHit, bool) {
	if query == "" {
		return model.KWICHit{}, false
	}
	if contextSize < 0 {
		contextSize = 0
	}

	for i, token := range tokens {
		if !strings.EqualFold(token, query) {
			continue
		}

		leftStart := max(0, i-contextSize)
		rightEnd := min(len(tokens), i+1+contextSize)

		return model.KWICHit{
			Left:  clone(tokens[leftStart:i]),
			Match: []string{token},
			Right: clone(tokens[i+1 : rightEnd]),
		}, true
	}

	return model.KWICHit{}, false
}

// clone copies a window so hits never alias the cached token slices.
func clone(window []string) []string {
	out := make([]string, len(window))
	copy(out, window)
	return out
}
