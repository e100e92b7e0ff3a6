package recommend

import "strings"

// RejectionSet holds job titles that are never returned as the primary
// recommendation. Membership is case-insensitive.
type RejectionSet struct {
	titles map[string]struct{}
}

// DefaultRejectedTitles are the low-skill titles excluded out of the box.
var DefaultRejectedTitles = []string{
	"delivery driver",
	"retail sales associate",
	"store assistant",
	"store clerk",
	"warehouse worker",
	"cashier",
	"call center agent",
}

// NewRejectionSet builds a set from titles. Blank entries are ignored.
func NewRejectionSet(titles ...string) RejectionSet {
	set := RejectionSet{titles: make(map[string]struct{}, len(titles))}
	for _, title := range titles {
		if key := normalizeTitle(title); key != "" {
			set.titles[key] = struct{}{}
		}
	}
	return set
}

// DefaultRejectionSet returns a set of DefaultRejectedTitles.
func DefaultRejectionSet() RejectionSet {
	return NewRejectionSet(DefaultRejectedTitles...)
}

// Contains reports whether title is rejected.
func (s RejectionSet) Contains(title string) bool {
	_, ok := s.titles[normalizeTitle(title)]
	return ok
}

// Len returns the number of rejected titles.
func (s RejectionSet) Len() int { return len(s.titles) }

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
