package classifier

import (
	"github.com/mikey/sms-spam-classifier/internal/core"
)

// Baseline is the majority-class predictor. It ignores features and
// always predicts the train split's most frequent class with full
// confidence. It exists as the lower bound the Naive Bayes model must
// clear on an imbalanced corpus.
type Baseline struct {
	// MajorityClass is the most frequent label in the train split.
	MajorityClass core.Label
}

// FitBaseline determines the majority class of the train split.
func FitBaseline(labels []core.Label) (*Baseline, error) {
	if len(labels) == 0 {
		return nil, &core.DegenerateTrainingDataError{Examples: 0, Classes: 0}
	}

	counts := make(map[core.Label]int, 2)
	for _, l := range labels {
		counts[l]++
	}

	// Ham wins ties: on a spam corpus the conservative default is to
	// let messages through.
	majority := core.Ham
	if counts[core.Spam] > counts[core.Ham] {
		majority = core.Spam
	}
	return &Baseline{MajorityClass: majority}, nil
}

// Name identifies the baseline in reports and logs.
func (b *Baseline) Name() string {
	return "baseline"
}

// PredictProba returns 1.0 when the majority class is spam, else 0.0.
func (b *Baseline) PredictProba(_ core.FeatureVector) float64 {
	if b.MajorityClass == core.Spam {
		return 1.0
	}
	return 0.0
}

var _ core.Predictor = (*Baseline)(nil)
