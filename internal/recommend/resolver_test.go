package recommend

import (
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-compass/internal/classifier"
	"github.com/spigell/career-compass/internal/fuzzy"
	"github.com/spigell/career-compass/internal/profile"
)

type fakeClassifier struct {
	result *classifier.Result
	err    error
	texts  []string
}

func (f *fakeClassifier) Classify(text string) (*classifier.Result, error) {
	f.texts = append(f.texts, text)
	return f.result, f.err
}

var corpus = []string{"Data Scientist", "cashier", "web developer", "data scientist", " ", "graphic designer"}

func pythonAnalyst() *profile.Profile {
	return &profile.Profile{
		TechnicalSkills: []profile.Skill{{Name: "python"}},
		CurrentRole:     "data analyst",
	}
}

func stepNames(res *Resolution) []string {
	names := make([]string, 0, len(res.Steps))
	for _, s := range res.Steps {
		names = append(names, s.Name)
	}
	return names
}

func TestResolveFallbackWhenClassifierUnavailable(t *testing.T) {
	scorer := func(a, b string) float64 {
		if a == "python" && b == "data scientist" {
			return 75
		}
		return fuzzy.TokenSortRatio(a, b)
	}

	r := New(nil, corpus, WithScorer(scorer))
	res := r.Resolve(pythonAnalyst())

	if res.Primary != "data scientist" {
		t.Fatalf("expected data scientist, got %q", res.Primary)
	}
	if res.Path != FallbackMatched {
		t.Fatalf("expected fallback path, got %q", res.Path)
	}
	if !slices.Equal(res.Alternatives, []string{"data scientist"}) {
		t.Fatalf("unexpected alternatives: %v", res.Alternatives)
	}
	if want := []string{StepSynthesize, StepClassify, StepFallback}; !slices.Equal(stepNames(res), want) {
		t.Fatalf("unexpected steps: %v, want %v", stepNames(res), want)
	}
}

func TestResolveFallbackWithTokenSortRatio(t *testing.T) {
	clf := &fakeClassifier{err: classifier.ErrUnavailable}
	p := &profile.Profile{TechnicalSkills: []profile.Skill{{Name: "Data Science"}}}

	res := New(clf, corpus).Resolve(p)

	if res.Primary != "data scientist" || res.Path != FallbackMatched {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveFallbackQueryPriority(t *testing.T) {
	p := &profile.Profile{
		SoftSkills:  []profile.Skill{{Name: "graphic design"}},
		CurrentRole: "web developer",
	}

	var queries []string
	scorer := func(a, b string) float64 {
		queries = append(queries, a)
		return fuzzy.TokenSortRatio(a, b)
	}

	res := New(nil, corpus, WithScorer(scorer)).Resolve(p)

	if res.Primary != "graphic designer" {
		t.Fatalf("expected soft skills to drive the fallback, got %q", res.Primary)
	}
	for _, q := range queries {
		if q != "graphic design" {
			t.Fatalf("unexpected fallback query %q", q)
		}
	}
}

func TestResolveRejectionPromotesAlternative(t *testing.T) {
	clf := &fakeClassifier{result: &classifier.Result{
		Primary:      "cashier",
		Alternatives: []string{"cashier", "retail sales associate", "data analyst"},
	}}

	core, logs := observer.New(zap.InfoLevel)
	res := New(clf, corpus, WithLogger(zap.New(core))).Resolve(pythonAnalyst())

	if res.Primary != "data analyst" {
		t.Fatalf("expected data analyst, got %q", res.Primary)
	}
	want := []string{"data analyst", "cashier", "retail sales associate"}
	if !slices.Equal(res.Alternatives, want) {
		t.Fatalf("unexpected alternatives: %v, want %v", res.Alternatives, want)
	}
	if !res.Rejected || res.Path != Classified {
		t.Fatalf("unexpected flags: rejected=%v path=%q", res.Rejected, res.Path)
	}
	if logs.FilterMessage("rejected primary label").Len() != 1 {
		t.Fatalf("expected rejection to be logged")
	}
}

func TestResolveRejectionWithoutAcceptableAlternative(t *testing.T) {
	clf := &fakeClassifier{result: &classifier.Result{
		Primary:      "Cashier",
		Alternatives: []string{"Cashier", "store clerk"},
	}}

	res := New(clf, corpus).Resolve(pythonAnalyst())

	if res.Primary != DefaultCareer || res.Path != Defaulted {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	want := []string{DefaultCareer, "Cashier", "store clerk"}
	if !slices.Equal(res.Alternatives, want) {
		t.Fatalf("unexpected alternatives: %v, want %v", res.Alternatives, want)
	}
}

func TestResolveRejectsFallbackMatch(t *testing.T) {
	p := &profile.Profile{CurrentRole: "cashier"}

	res := New(nil, []string{"cashier"}).Resolve(p)

	if res.Primary != DefaultCareer || !res.Rejected {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name    string
		clf     Classifier
		corpus  []string
		profile *profile.Profile
		want    []string
	}{
		{
			name:    "classifier error and no match",
			clf:     &fakeClassifier{err: errors.New("boom")},
			corpus:  corpus,
			profile: &profile.Profile{TechnicalSkills: []profile.Skill{{Name: "welding"}}},
			want:    []string{DefaultCareer},
		},
		{
			name:    "empty corpus",
			corpus:  nil,
			profile: pythonAnalyst(),
			want:    []string{DefaultCareer},
		},
		{
			name:    "nil profile",
			corpus:  corpus,
			profile: nil,
			want:    []string{DefaultCareer},
		},
		{
			name:    "empty primary keeps partial alternatives",
			clf:     &fakeClassifier{result: &classifier.Result{Alternatives: []string{"nurse", "teacher", "pilot"}}},
			corpus:  corpus,
			profile: &profile.Profile{CurrentRole: "sailor"},
			want:    []string{DefaultCareer, "nurse", "teacher"},
		},
		{
			name:    "nil result",
			clf:     &fakeClassifier{},
			corpus:  corpus,
			profile: &profile.Profile{CurrentRole: "sailor"},
			want:    []string{DefaultCareer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := New(tt.clf, tt.corpus).Resolve(tt.profile)
			if res.Primary != DefaultCareer || res.Path != Defaulted {
				t.Fatalf("unexpected resolution: %+v", res)
			}
			if !slices.Equal(res.Alternatives, tt.want) {
				t.Fatalf("unexpected alternatives: %v, want %v", res.Alternatives, tt.want)
			}
			if names := stepNames(res); names[len(names)-1] != StepDefault {
				t.Fatalf("expected default step last, got %v", names)
			}
		})
	}
}

func TestResolveClassifiedPassesWeightedText(t *testing.T) {
	clf := &fakeClassifier{result: &classifier.Result{
		Primary:      "Data Analyst",
		Alternatives: []string{"Data Analyst", "data analyst", "ml engineer", "statistician"},
	}}

	res := New(clf, corpus).Resolve(pythonAnalyst())

	if res.Path != Classified || res.Rejected {
		t.Fatalf("unexpected resolution: %+v", res)
	}
	want := []string{"Data Analyst", "ml engineer", "statistician"}
	if !slices.Equal(res.Alternatives, want) {
		t.Fatalf("unexpected alternatives: %v, want %v", res.Alternatives, want)
	}
	if len(clf.texts) != 1 || clf.texts[0] == "" {
		t.Fatalf("expected synthesized text to reach classifier, got %q", clf.texts)
	}
}

func TestResolveInvariants(t *testing.T) {
	results := []*classifier.Result{
		{Primary: "cashier", Alternatives: []string{"cashier"}},
		{Primary: "nurse", Alternatives: []string{"nurse", "nurse", "NURSE"}},
		{Primary: "warehouse worker", Alternatives: []string{"delivery driver", "teacher", "pilot", "chef"}},
		{Primary: "chef", Alternatives: []string{"pilot", "teacher", "dentist", "chef"}},
		{Primary: "", Alternatives: nil},
	}
	rejected := DefaultRejectionSet()

	for _, result := range results {
		res := New(&fakeClassifier{result: result}, corpus).Resolve(pythonAnalyst())

		if rejected.Contains(res.Primary) {
			t.Fatalf("primary %q is rejected", res.Primary)
		}
		if n := len(res.Alternatives); n < 1 || n > MaxAlternatives {
			t.Fatalf("alternatives size %d out of range: %v", n, res.Alternatives)
		}
		if res.Alternatives[0] != res.Primary {
			t.Fatalf("primary %q is not first in %v", res.Primary, res.Alternatives)
		}
		seen := map[string]bool{}
		for _, alt := range res.Alternatives {
			key := normalizeTitle(alt)
			if seen[key] {
				t.Fatalf("duplicate alternative %q in %v", alt, res.Alternatives)
			}
			seen[key] = true
		}
	}
}

func TestNormalizeCorpus(t *testing.T) {
	got := NormalizeCorpus(corpus)
	want := []string{"data scientist", "cashier", "web developer", "graphic designer"}
	if !slices.Equal(got, want) {
		t.Fatalf("NormalizeCorpus() = %v, want %v", got, want)
	}
}
