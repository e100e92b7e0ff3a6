package classifier

import (
	"math"
	"strings"
	"testing"
)

const tinyModel = `{
  "labels": ["data scientist", "graphic designer"],
  "vocabulary": {"python": 0, "statistics": 1, "photoshop": 2, "design": 3},
  "idf": [1.5, 1.5, 1.5, 1.2],
  "stop_words": ["and", "the"],
  "class_log_prior": [-0.6931, -0.6931],
  "feature_log_prob": [
    [-0.5, -0.9, -3.0, -2.5],
    [-3.0, -2.8, -0.4, -0.7]
  ]
}`

func loadTinyModel(t *testing.T) *NaiveBayes {
	t.Helper()
	m, err := LoadNaiveBayes(strings.NewReader(tinyModel))
	if err != nil {
		t.Fatalf("load model: %v", err)
	}
	return m
}

func TestNaiveBayesPredict(t *testing.T) {
	m := loadTinyModel(t)

	tests := []struct {
		text string
		want string
	}{
		{text: "Python and statistics", want: "data scientist"},
		{text: "photoshop, design, design", want: "graphic designer"},
	}

	for _, tt := range tests {
		idx, err := m.Predict(tt.text)
		if err != nil {
			t.Fatalf("predict %q: %v", tt.text, err)
		}
		label, err := m.Decode(idx)
		if err != nil {
			t.Fatalf("decode %d: %v", idx, err)
		}
		if label != tt.want {
			t.Fatalf("Predict(%q) = %q, want %q", tt.text, label, tt.want)
		}
	}
}

func TestNaiveBayesProbabilitiesSumToOne(t *testing.T) {
	m := loadTinyModel(t)

	dist, err := m.Probabilities("python statistics photoshop")
	if err != nil {
		t.Fatalf("probabilities: %v", err)
	}

	var sum float64
	for _, p := range dist {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected probabilities to sum to 1, got %v", sum)
	}
	if dist[0] <= dist[1] {
		t.Fatalf("expected data scientist to dominate, got %v", dist)
	}
}

func TestNaiveBayesUnknownTextFallsBackToPrior(t *testing.T) {
	m := loadTinyModel(t)

	dist, err := m.Probabilities("the and of")
	if err != nil {
		t.Fatalf("probabilities: %v", err)
	}
	if math.Abs(dist[0]-0.5) > 1e-9 {
		t.Fatalf("expected uniform distribution, got %v", dist)
	}

	idx, err := m.Predict("")
	if err != nil || idx != 0 {
		t.Fatalf("expected first class on tie, got %d (%v)", idx, err)
	}
}

func TestNaiveBayesWorksWithAdapter(t *testing.T) {
	m := loadTinyModel(t)

	got, err := NewAdapter(m, m, nil).Classify("design photoshop")
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got.Primary != "graphic designer" || len(got.Alternatives) != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestLoadNaiveBayesRejectsInconsistentShapes(t *testing.T) {
	tests := map[string]string{
		"no labels":        `{"labels": []}`,
		"prior mismatch":   `{"labels": ["a"], "class_log_prior": [], "feature_log_prob": [[0]], "idf": [1]}`,
		"row mismatch":     `{"labels": ["a"], "class_log_prior": [0], "feature_log_prob": [[0, 1]], "idf": [1]}`,
		"vocab overflow":   `{"labels": ["a"], "class_log_prior": [0], "feature_log_prob": [[0]], "idf": [1], "vocabulary": {"x": 3}}`,
		"malformed json":   `{`,
		"missing features": `{"labels": ["a", "b"], "class_log_prior": [0, 0], "feature_log_prob": [[0]], "idf": [1]}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadNaiveBayes(strings.NewReader(payload)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNaiveBayesDecodeOutOfRange(t *testing.T) {
	m := loadTinyModel(t)
	if _, err := m.Decode(5); err == nil {
		t.Fatalf("expected error")
	}
}
