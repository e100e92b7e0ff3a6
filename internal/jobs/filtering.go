package jobs

import (
	"strings"

	"go.uber.org/zap"
)

// Filter drops unwanted openings from a search result.
type Filter interface {
	Name() string
	Apply(j *Jobs) Step
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// TitleSet reports whether a job title is unwanted.
type TitleSet interface {
	Contains(title string) bool
}

type companiesFilter struct {
	companies map[string]struct{}
}

// NewExcludedCompanies creates a filter that removes openings posted by the
// given companies. Company names compare case-insensitively.
func NewExcludedCompanies(companies []string) Filter {
	f := &companiesFilter{companies: make(map[string]struct{}, len(companies))}
	for _, c := range companies {
		if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
			f.companies[c] = struct{}{}
		}
	}
	return f
}

func (f *companiesFilter) Name() string { return "excluded_companies" }

func (f *companiesFilter) Apply(j *Jobs) Step {
	return j.exclude(func(job *Job) bool {
		_, ok := f.companies[strings.ToLower(strings.TrimSpace(job.Company))]
		return ok
	})
}

type titlesFilter struct {
	titles TitleSet
}

// NewRejectedTitles creates a filter that removes openings whose title is in
// titles.
func NewRejectedTitles(titles TitleSet) Filter {
	return &titlesFilter{titles: titles}
}

func (f *titlesFilter) Name() string { return "rejected_titles" }

func (f *titlesFilter) Apply(j *Jobs) Step {
	if f.titles == nil {
		return Step{Initial: j.Len(), Left: j.Len()}
	}
	return j.exclude(func(job *Job) bool {
		return f.titles.Contains(job.Title)
	})
}

// exclude removes the jobs for which drop returns true, keeping order.
func (j *Jobs) exclude(drop func(*Job) bool) Step {
	initial := j.Len()
	if initial == 0 {
		return Step{}
	}

	kept := j.Items[:0]
	for _, job := range j.Items {
		if !drop(job) {
			kept = append(kept, job)
		}
	}
	j.Items = kept

	return Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

func runFilters(filters []Filter, j *Jobs, logger *zap.Logger) {
	for _, f := range filters {
		step := f.Apply(j)
		if step.Dropped == 0 {
			continue
		}
		logger.Debug("filter step",
			zap.String("name", f.Name()),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}
}
