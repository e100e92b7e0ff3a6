// Package roadmap looks up learning roadmaps by career label.
package roadmap

import "strings"

// Default is returned for labels without a stored roadmap.
var Default = []string{
	"1️⃣ Learn the core foundations",
	"2️⃣ Build and showcase projects",
	"3️⃣ Network with industry professionals",
	"4️⃣ Stay updated with emerging tools",
}

// Table maps normalized career labels to ordered roadmap steps.
type Table map[string][]string

// NewTable copies raw into a Table with trimmed, lower-cased keys. Later
// entries win when two raw keys normalize to the same label.
func NewTable(raw map[string][]string) Table {
	t := make(Table, len(raw))
	for label, steps := range raw {
		t[normalize(label)] = append([]string(nil), steps...)
	}
	return t
}

// Lookup returns the stored steps for label.
func (t Table) Lookup(label string) ([]string, bool) {
	steps, ok := t[normalize(label)]
	if !ok || len(steps) == 0 {
		return nil, false
	}
	return append([]string(nil), steps...), true
}

// Resolve returns the stored roadmap for label or a copy of Default. The
// lookup is exact after trimming and lower-casing; it never returns an empty
// roadmap.
func Resolve(label string, table Table) []string {
	if steps, ok := table.Lookup(label); ok {
		return steps
	}
	return append([]string(nil), Default...)
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
