// Package mentors resolves a career label to mentor records.
package mentors

import (
	"slices"
	"strings"

	"github.com/spigell/career-compass/internal/fuzzy"
)

const (
	// MaxMentors caps the number of mentors returned for a label.
	MaxMentors = 5
	// MatchThreshold is the exclusive minimum fuzzy score for a title match.
	MatchThreshold = 60
)

// Mentor is a single roster entry. JobTitle is used for matching only.
type Mentor struct {
	JobTitle       string `json:"-"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
	Contact        string `json:"contact"`
}

// Sentinel is returned when nothing in the roster matches.
var Sentinel = Mentor{
	Name:           "No mentor available",
	Specialization: "-",
	Experience:     "-",
	Contact:        "-",
}

// Resolve returns up to MaxMentors mentors for label, in roster order. Job
// titles are fuzzy matched first; if no title scores above MatchThreshold,
// each whitespace-separated token of label is tried in turn as a substring of
// the titles and the first token with any hit wins. The result is never
// empty: Sentinel stands in when nothing matches.
func Resolve(label string, roster []Mentor) []Mentor {
	query := strings.ToLower(strings.TrimSpace(label))
	titles := make([]string, len(roster))
	for i, m := range roster {
		titles[i] = strings.ToLower(strings.TrimSpace(m.JobTitle))
	}

	indices := fuzzyIndices(query, titles)
	if len(indices) == 0 {
		indices = keywordIndices(query, titles)
	}
	if len(indices) == 0 {
		return []Mentor{Sentinel}
	}

	out := make([]Mentor, 0, len(indices))
	for _, i := range indices {
		out = append(out, roster[i])
	}
	return out
}

func fuzzyIndices(query string, titles []string) []int {
	matches := fuzzy.Above(fuzzy.Extract(query, titles, MaxMentors), MatchThreshold)

	indices := make([]int, 0, len(matches))
	for _, m := range matches {
		indices = append(indices, m.Index)
	}
	slices.Sort(indices)
	return indices
}

func keywordIndices(query string, titles []string) []int {
	for _, token := range strings.Fields(query) {
		var indices []int
		for i, title := range titles {
			if strings.Contains(title, token) {
				indices = append(indices, i)
				if len(indices) == MaxMentors {
					break
				}
			}
		}
		if len(indices) > 0 {
			return indices
		}
	}
	return nil
}
