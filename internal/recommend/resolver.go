// Package recommend resolves a profile into a primary career label and ranked
// alternatives. Classifier failures fall back to fuzzy title search and,
// failing that, to a fixed default; rejected titles are never returned as
// the primary label.
package recommend

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/classifier"
	"github.com/spigell/career-compass/internal/features"
	"github.com/spigell/career-compass/internal/fuzzy"
	"github.com/spigell/career-compass/internal/logger"
	"github.com/spigell/career-compass/internal/profile"
	"github.com/spigell/career-compass/internal/utils"
)

const (
	// DefaultCareer is substituted when nothing better can be resolved.
	DefaultCareer = "software engineer"
	// FallbackThreshold is the exclusive minimum fuzzy score for fallback matches.
	FallbackThreshold = 60
	// MaxAlternatives caps the alternatives list, primary included.
	MaxAlternatives = 3

	maxLoggedText = 200
)

// Path names the branch that produced a Resolution.
type Path string

const (
	Classified      Path = "classified"
	FallbackMatched Path = "fallback_matched"
	Defaulted       Path = "defaulted"
)

// Step names recorded in Resolution.Steps.
const (
	StepSynthesize = "synthesize"
	StepClassify   = "classify"
	StepFallback   = "fallback_search"
	StepDefault    = "default"
	StepReject     = "reject"
)

// Classifier is the subset of classifier.Adapter used by the resolver.
type Classifier interface {
	Classify(text string) (*classifier.Result, error)
}

// Step is one transition of a resolution.
type Step struct {
	Name    string `json:"name"`
	Outcome string `json:"outcome"`
}

// Resolution is the outcome of Resolve. Alternatives always holds between one
// and MaxAlternatives distinct labels with Primary first.
type Resolution struct {
	Primary      string   `json:"primary"`
	Alternatives []string `json:"alternatives"`
	Path         Path     `json:"path"`
	// Rejected is set when the initial primary was in the rejection set.
	Rejected bool   `json:"rejected"`
	Steps    []Step `json:"steps"`
}

func (r *Resolution) step(name, format string, args ...any) {
	r.Steps = append(r.Steps, Step{Name: name, Outcome: fmt.Sprintf(format, args...)})
}

// Resolver runs the recommendation pipeline. It holds only read-only state and
// is safe for concurrent use.
type Resolver struct {
	classifier    Classifier
	corpus        []string
	scorer        fuzzy.Scorer
	rejected      RejectionSet
	defaultCareer string
	logger        *zap.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithScorer replaces the fuzzy scorer used for fallback search.
func WithScorer(scorer fuzzy.Scorer) Option {
	return func(r *Resolver) {
		if scorer != nil {
			r.scorer = scorer
		}
	}
}

// WithRejectionSet replaces the default rejection set.
func WithRejectionSet(set RejectionSet) Option {
	return func(r *Resolver) { r.rejected = set }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New returns a resolver. clf may be nil, in which case every resolution goes
// through fallback search. corpus is the reference job-title list; it is
// lower-cased, trimmed and de-duplicated keeping first occurrences.
func New(clf Classifier, corpus []string, opts ...Option) *Resolver {
	r := &Resolver{
		classifier:    clf,
		corpus:        NormalizeCorpus(corpus),
		scorer:        fuzzy.TokenSortRatio,
		rejected:      DefaultRejectionSet(),
		defaultCareer: DefaultCareer,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Corpus returns a copy of the normalized reference titles.
func (r *Resolver) Corpus() []string {
	return append([]string(nil), r.corpus...)
}

// Resolve runs synthesis, classification, fallback and the rejection policy
// for p. It never fails: every failure degrades to a fallback path.
func (r *Resolver) Resolve(p *profile.Profile) *Resolution {
	res := &Resolution{}
	n := p.Normalize()

	text := features.FromNormalized(n)
	res.step(StepSynthesize, "%d characters", len(text))
	r.logger.Debug("weighted text synthesized", zap.String("text", utils.TruncateForLog(text, maxLoggedText)))

	var partial []string
	result, err := r.classify(text)
	switch {
	case err != nil:
		res.step(StepClassify, "unavailable: %v", err)
	case result.Primary == "":
		res.step(StepClassify, "empty primary label")
		partial = result.Alternatives
	default:
		res.step(StepClassify, "predicted %q", result.Primary)
		res.Primary = result.Primary
		res.Alternatives = result.Alternatives
		res.Path = Classified
	}

	if res.Primary == "" {
		r.fallback(res, features.FallbackQuery(n), partial)
	}

	r.reject(res)
	res.Alternatives = finalize(res.Primary, res.Alternatives)

	r.logger.Debug("recommendation resolved",
		zap.String(logger.FieldCareer, res.Primary),
		zap.String(logger.FieldPath, string(res.Path)),
		zap.Strings("alternatives", res.Alternatives),
	)
	return res
}

func (r *Resolver) classify(text string) (*classifier.Result, error) {
	if r.classifier == nil {
		return nil, classifier.ErrUnavailable
	}

	result, err := r.classifier.Classify(text)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &classifier.Result{}, nil
	}
	return result, nil
}

func (r *Resolver) fallback(res *Resolution, query string, partial []string) {
	matches := fuzzy.Above(fuzzy.ExtractWith(r.scorer, query, r.corpus, MaxAlternatives), FallbackThreshold)
	if len(matches) > 0 {
		res.Primary = matches[0].Candidate
		res.Alternatives = make([]string, 0, len(matches))
		for _, m := range matches {
			res.Alternatives = append(res.Alternatives, m.Candidate)
		}
		res.Path = FallbackMatched
		res.step(StepFallback, "query %q matched %q (score %.1f)", query, matches[0].Candidate, matches[0].Score)
		return
	}

	res.step(StepFallback, "query %q matched nothing above %d", query, FallbackThreshold)
	res.Primary = r.defaultCareer
	res.Alternatives = partial
	res.Path = Defaulted
	res.step(StepDefault, "using %q", r.defaultCareer)
}

func (r *Resolver) reject(res *Resolution) {
	if !r.rejected.Contains(res.Primary) {
		return
	}

	res.Rejected = true
	original := res.Primary
	for _, alt := range res.Alternatives {
		if alt != "" && !r.rejected.Contains(alt) {
			res.Primary = alt
			res.step(StepReject, "%q rejected, promoted %q", original, alt)
			r.logger.Info("rejected primary label", zap.String("rejected", original), zap.String("promoted", alt))
			return
		}
	}

	res.Primary = r.defaultCareer
	res.Path = Defaulted
	res.step(StepReject, "%q rejected, no acceptable alternative, using %q", original, r.defaultCareer)
	r.logger.Info("rejected primary label", zap.String("rejected", original), zap.String("promoted", r.defaultCareer))
}

// finalize puts primary first, drops blanks and case-insensitive duplicates
// keeping first occurrences, and caps the list at MaxAlternatives.
func finalize(primary string, alternatives []string) []string {
	seen := make(map[string]struct{}, len(alternatives)+1)
	out := make([]string, 0, MaxAlternatives)

	for _, label := range append([]string{primary}, alternatives...) {
		key := normalizeTitle(label)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(label))
		if len(out) == MaxAlternatives {
			break
		}
	}
	return out
}

// NormalizeCorpus lower-cases and trims titles, dropping blanks and
// duplicates while keeping first occurrences.
func NormalizeCorpus(titles []string) []string {
	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		key := normalizeTitle(title)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
