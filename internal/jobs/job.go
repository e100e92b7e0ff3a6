package jobs

import "strings"

type Jobs struct {
	Items []*Job `json:"jobs"`
	Total int    `json:"-"`
}

type Job struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	Link     string `json:"link"`
}

func (j *Job) fillMissing() {
	for _, field := range []*string{&j.Title, &j.Company, &j.Location, &j.Salary} {
		if *field = strings.TrimSpace(*field); *field == "" {
			*field = notAvailable
		}
	}
	if j.Link = strings.TrimSpace(j.Link); j.Link == "" {
		j.Link = missingLink
	}
}

func (j *Jobs) Len() int {
	if j == nil {
		return 0
	}
	return len(j.Items)
}

// Titles returns the job titles in result order.
func (j *Jobs) Titles() []string {
	if j == nil {
		return nil
	}
	titles := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		titles = append(titles, job.Title)
	}
	return titles
}

// List returns the jobs, never nil.
func (j *Jobs) List() []*Job {
	if j == nil || j.Items == nil {
		return []*Job{}
	}
	return j.Items
}
