// Package catalog holds the loaded reference data and answers
// recommendation, mentor and roadmap queries over it. A Catalog is built once
// at startup and is read-only afterwards.
package catalog

import (
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/classifier"
	"github.com/spigell/career-compass/internal/dataset"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/mentors"
	"github.com/spigell/career-compass/internal/profile"
	"github.com/spigell/career-compass/internal/recommend"
	"github.com/spigell/career-compass/internal/roadmap"
)

// ErrEmptyProfile is returned when no profile is supplied.
var ErrEmptyProfile = errors.New("profile is required")

// Recommendation is a resolved career with its supporting artifacts.
type Recommendation struct {
	Career          string           `json:"career"`
	Recommendations []string         `json:"recommendations"`
	Mentors         []mentors.Mentor `json:"mentors"`
	Roadmap         []string         `json:"roadmap"`
	Path            recommend.Path   `json:"path"`
	Rejected        bool             `json:"rejected,omitempty"`
	Steps           []recommend.Step `json:"-"`
}

// Catalog answers queries over immutable reference data.
type Catalog struct {
	resolver *recommend.Resolver
	mentors  []mentors.Mentor
	roadmaps roadmap.Table
	logger   *zap.Logger
}

// New builds a catalog from ds. A missing model routes every recommendation
// through fallback search.
func New(ds *dataset.Datasets, l *zap.Logger, opts ...recommend.Option) *Catalog {
	if l == nil {
		l = zap.NewNop()
	}
	if ds == nil {
		ds = &dataset.Datasets{}
	}

	var clf recommend.Classifier
	if ds.Model != nil {
		clf = classifier.NewAdapter(ds.Model, ds.Model, l.Named("classifier"))
	} else {
		l.Warn("classifier model is not loaded, recommendations will use fallback search")
	}

	opts = append([]recommend.Option{recommend.WithLogger(l.Named("resolver"))}, opts...)

	return &Catalog{
		resolver: recommend.New(clf, ds.Careers, opts...),
		mentors:  append([]mentors.Mentor(nil), ds.Mentors...),
		roadmaps: roadmap.NewTable(ds.Roadmaps),
		logger:   l,
	}
}

// Recommend resolves p into a career and looks up its mentors and roadmap.
func (c *Catalog) Recommend(p *profile.Profile) (*Recommendation, error) {
	if p == nil {
		return nil, ErrEmptyProfile
	}

	res := c.resolver.Resolve(p)
	rec := &Recommendation{
		Career:          res.Primary,
		Recommendations: res.Alternatives,
		Mentors:         c.Mentors(res.Primary),
		Roadmap:         c.Roadmap(res.Primary),
		Path:            res.Path,
		Rejected:        res.Rejected,
		Steps:           res.Steps,
	}

	c.logger.Info("career recommended",
		zap.String(logger.FieldCareer, rec.Career),
		zap.String(logger.FieldPath, string(rec.Path)),
		zap.Int("mentors", len(rec.Mentors)),
	)
	return rec, nil
}

// Mentors returns the mentors for label, or the sentinel record.
func (c *Catalog) Mentors(label string) []mentors.Mentor {
	return mentors.Resolve(label, c.mentors)
}

// Roadmap returns the stored roadmap for label or the default roadmap.
func (c *Catalog) Roadmap(label string) []string {
	return roadmap.Resolve(label, c.roadmaps)
}

// StoredRoadmap returns the stored roadmap for label without substituting
// the default.
func (c *Catalog) StoredRoadmap(label string) ([]string, bool) {
	return c.roadmaps.Lookup(label)
}

// Titles returns the normalized reference job titles.
func (c *Catalog) Titles() []string {
	return c.resolver.Corpus()
}
