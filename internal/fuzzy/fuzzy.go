// Package fuzzy ranks candidate strings against a query by token-sort ratio.
package fuzzy

import (
	"cmp"
	"slices"
	"strings"
)

// Scorer returns a similarity score between 0 and 100.
type Scorer func(a, b string) float64

// Match is a single ranked candidate. Index is the candidate's position in
// the searched corpus.
type Match struct {
	Candidate string
	Score     float64
	Index     int
}

// TokenSortRatio splits both strings on whitespace, sorts the tokens, joins
// them back with single spaces and compares the results with Ratio. Word
// order does not affect the score; token identity and repetition do.
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// Ratio is the normalized Indel similarity of two strings:
// 100 * (1 - indel/(len(a)+len(b))), measured in runes. Two empty strings
// are identical; a single empty string scores 0.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	// indel distance is total - 2*lcs
	return 100 * float64(2*lcsLength(ra, rb)) / float64(total)
}

// Extract scores every corpus entry against query with TokenSortRatio and
// returns at most limit matches ordered by descending score. Equal scores
// keep corpus order.
func Extract(query string, corpus []string, limit int) []Match {
	return ExtractWith(TokenSortRatio, query, corpus, limit)
}

// ExtractWith is Extract with a caller supplied scorer.
func ExtractWith(scorer Scorer, query string, corpus []string, limit int) []Match {
	if strings.TrimSpace(query) == "" || len(corpus) == 0 || limit <= 0 {
		return nil
	}
	if scorer == nil {
		scorer = TokenSortRatio
	}

	matches := make([]Match, 0, len(corpus))
	for i, candidate := range corpus {
		matches = append(matches, Match{
			Candidate: candidate,
			Score:     scorer(query, candidate),
			Index:     i,
		})
	}

	slices.SortStableFunc(matches, func(x, y Match) int {
		return cmp.Compare(y.Score, x.Score)
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Above keeps the matches whose score is strictly greater than threshold,
// preserving order.
func Above(matches []Match, threshold float64) []Match {
	kept := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Score > threshold {
			kept = append(kept, m)
		}
	}
	return kept
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
