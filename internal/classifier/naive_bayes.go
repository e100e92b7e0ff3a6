package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// NaiveBayes is an exported TF-IDF + multinomial naive Bayes model. It only
// performs inference; fitting happens outside this program.
type NaiveBayes struct {
	Labels         []string       `json:"labels"`
	Vocabulary     map[string]int `json:"vocabulary"`
	IDF            []float64      `json:"idf"`
	StopWords      []string       `json:"stop_words"`
	ClassLogPrior  []float64      `json:"class_log_prior"`
	FeatureLogProb [][]float64    `json:"feature_log_prob"`

	stop map[string]struct{}
}

// LoadNaiveBayes decodes and validates a model artifact.
func LoadNaiveBayes(r io.Reader) (*NaiveBayes, error) {
	var m NaiveBayes
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	m.stop = make(map[string]struct{}, len(m.StopWords))
	for _, w := range m.StopWords {
		m.stop[strings.ToLower(w)] = struct{}{}
	}

	return &m, nil
}

func (m *NaiveBayes) validate() error {
	classes := len(m.Labels)
	if classes == 0 {
		return errors.New("model has no labels")
	}
	if len(m.ClassLogPrior) != classes {
		return fmt.Errorf("model has %d class priors for %d labels", len(m.ClassLogPrior), classes)
	}
	if len(m.FeatureLogProb) != classes {
		return fmt.Errorf("model has %d feature rows for %d labels", len(m.FeatureLogProb), classes)
	}

	features := len(m.IDF)
	for i, row := range m.FeatureLogProb {
		if len(row) != features {
			return fmt.Errorf("feature row %d has %d columns, expected %d", i, len(row), features)
		}
	}
	for term, col := range m.Vocabulary {
		if col < 0 || col >= features {
			return fmt.Errorf("vocabulary term %q points to column %d outside %d features", term, col, features)
		}
	}
	return nil
}

// Predict returns the class with the highest joint log likelihood.
func (m *NaiveBayes) Predict(text string) (int, error) {
	jll, err := m.jointLogLikelihood(text)
	if err != nil {
		return 0, err
	}
	return TopIndices(jll, 1)[0], nil
}

// Probabilities returns the posterior distribution over classes.
func (m *NaiveBayes) Probabilities(text string) ([]float64, error) {
	jll, err := m.jointLogLikelihood(text)
	if err != nil {
		return nil, err
	}

	maxLL := math.Inf(-1)
	for _, v := range jll {
		maxLL = math.Max(maxLL, v)
	}

	var sum float64
	probs := make([]float64, len(jll))
	for i, v := range jll {
		probs[i] = math.Exp(v - maxLL)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs, nil
}

// Decode maps a class index to its label.
func (m *NaiveBayes) Decode(index int) (string, error) {
	if index < 0 || index >= len(m.Labels) {
		return "", fmt.Errorf("class index %d out of range [0, %d)", index, len(m.Labels))
	}
	return m.Labels[index], nil
}

func (m *NaiveBayes) jointLogLikelihood(text string) ([]float64, error) {
	if m == nil || len(m.Labels) == 0 {
		return nil, ErrUnavailable
	}

	x := m.vectorize(text)
	jll := make([]float64, len(m.Labels))
	for c := range jll {
		ll := m.ClassLogPrior[c]
		for col, w := range x {
			ll += w * m.FeatureLogProb[c][col]
		}
		jll[c] = ll
	}
	return jll, nil
}

// vectorize returns the sparse, L2-normalized tf-idf vector of text.
func (m *NaiveBayes) vectorize(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := m.stop[token]; skip {
			continue
		}
		if col, ok := m.Vocabulary[token]; ok {
			counts[col]++
		}
	}

	var norm float64
	for col, tf := range counts {
		counts[col] = tf * m.IDF[col]
		norm += counts[col] * counts[col]
	}

	if norm > 0 {
		norm = math.Sqrt(norm)
		for col := range counts {
			counts[col] /= norm
		}
	}
	return counts
}
