package jobs

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type titleSet map[string]bool

func (s titleSet) Contains(title string) bool {
	return s[strings.ToLower(strings.TrimSpace(title))]
}

func TestExcludedCompanies(t *testing.T) {
	j := &Jobs{Items: []*Job{
		{Title: "a", Company: "Acme"},
		{Title: "b", Company: "Globex"},
		{Title: "c", Company: " ACME "},
	}}

	step := NewExcludedCompanies([]string{"acme", " "}).Apply(j)

	assert.Equal(t, Step{Initial: 3, Dropped: 2, Left: 1}, step)
	assert.Equal(t, []string{"b"}, j.Titles())
}

func TestRejectedTitles(t *testing.T) {
	j := &Jobs{Items: []*Job{
		{Title: "Cashier"},
		{Title: "Data Analyst"},
		{Title: "Warehouse Worker"},
	}}

	step := NewRejectedTitles(titleSet{"cashier": true, "warehouse worker": true}).Apply(j)

	assert.Equal(t, Step{Initial: 3, Dropped: 2, Left: 1}, step)
	assert.Equal(t, []string{"Data Analyst"}, j.Titles())
}

func TestFiltersOnEmptyResult(t *testing.T) {
	assert.Equal(t, Step{}, NewExcludedCompanies([]string{"acme"}).Apply(&Jobs{}))
	assert.Equal(t, Step{}, NewRejectedTitles(nil).Apply(&Jobs{}))
}

func TestSearchFiltersBeforeLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(joobleResponse))
	}, Config{Limit: 3, ExcludeCompanies: []string{"acme"}})
	c.filters = append(c.filters, NewRejectedTitles(titleSet{"analyst": true}))

	jobs, err := c.Search(context.Background(), "data")
	require.NoError(t, err)

	assert.Equal(t, []string{"ML Engineer", "Statistician", "BI Developer"}, jobs.Titles())
	assert.Equal(t, 7, jobs.Total)
}
