// Package classifier adapts a label-predicting model into ranked career
// candidates.
package classifier

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// MaxAlternatives is the number of ranked candidates taken from a
// probability distribution.
const MaxAlternatives = 3

// ErrUnavailable is returned when no model is loaded or prediction failed.
var ErrUnavailable = errors.New("classifier unavailable")

// Predictor returns the index of the best class for text.
type Predictor interface {
	Predict(text string) (int, error)
}

// ProbabilityPredictor is implemented by predictors that expose a
// distribution over the label space.
type ProbabilityPredictor interface {
	Probabilities(text string) ([]float64, error)
}

// LabelDecoder maps class indices back to human readable labels.
type LabelDecoder interface {
	Decode(index int) (string, error)
}

// Result is a classification outcome. Alternatives are ordered by
// descending confidence.
type Result struct {
	Primary      string
	Alternatives []string
}

// Adapter wraps a predictor and its label decoder.
type Adapter struct {
	predictor Predictor
	decoder   LabelDecoder
	logger    *zap.Logger
}

// NewAdapter returns an adapter. A nil predictor or decoder yields an adapter
// that always reports ErrUnavailable.
func NewAdapter(predictor Predictor, decoder LabelDecoder, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{predictor: predictor, decoder: decoder, logger: logger}
}

// Classify predicts the primary label for text and, when the predictor
// exposes probabilities, up to MaxAlternatives ranked labels. Probability
// ties keep the lower class index first. Failures of the probability step
// degrade the alternatives to the primary label alone.
func (a *Adapter) Classify(text string) (*Result, error) {
	if a == nil || a.predictor == nil || a.decoder == nil {
		return nil, ErrUnavailable
	}

	primary, err := a.predictPrimary(text)
	if err != nil {
		a.logger.Warn("prediction failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	result := &Result{Primary: primary}

	alternatives, err := a.rank(text)
	switch {
	case err != nil:
		a.logger.Warn("ranking alternatives failed", zap.Error(err))
	case len(alternatives) > 0:
		result.Alternatives = alternatives
	}

	if len(result.Alternatives) == 0 && primary != "" {
		result.Alternatives = []string{primary}
	}

	return result, nil
}

func (a *Adapter) predictPrimary(text string) (label string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predictor panicked: %v", r)
		}
	}()

	idx, err := a.predictor.Predict(text)
	if err != nil {
		return "", err
	}

	label, err = a.decoder.Decode(idx)
	if err != nil {
		return "", fmt.Errorf("decode label %d: %w", idx, err)
	}
	return strings.TrimSpace(label), nil
}

func (a *Adapter) rank(text string) (labels []string, err error) {
	proba, ok := a.predictor.(ProbabilityPredictor)
	if !ok {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("predictor panicked: %v", r)
		}
	}()

	dist, err := proba.Probabilities(text)
	if err != nil {
		return nil, err
	}

	for _, idx := range TopIndices(dist, MaxAlternatives) {
		label, err := a.decoder.Decode(idx)
		if err != nil {
			return nil, fmt.Errorf("decode label %d: %w", idx, err)
		}
		labels = append(labels, strings.TrimSpace(label))
	}
	return labels, nil
}

// TopIndices returns the indices of the n largest values in descending order.
// Equal values keep ascending index order.
func TopIndices(values []float64, n int) []int {
	indices := make([]int, len(values))
	for i := range indices {
		indices[i] = i
	}

	slices.SortStableFunc(indices, func(x, y int) int {
		return cmp.Compare(values[y], values[x])
	})

	if n >= 0 && len(indices) > n {
		indices = indices[:n]
	}
	return indices
}
