// Package classifier provides the two predictor variants: a multinomial
// Naive Bayes model and the majority-class baseline it must beat.
package classifier

import (
	"math"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// classes fixes the iteration order over the two labels so fitting is
// deterministic.
var classes = []core.Label{core.Ham, core.Spam}

// NaiveBayes is a multinomial Naive Bayes model over TF-IDF features.
// All probability mass is kept in log-space; exponentiation happens only
// at the final normalization step of PredictProba. Immutable after fit.
type NaiveBayes struct {
	// Alpha is the Laplace smoothing constant, fixed by configuration.
	Alpha float64
	// Features is the dimensionality of the feature space fitted on.
	Features int
	// LogPrior holds the log class prior per label.
	LogPrior map[core.Label]float64
	// FeatureLogProb holds log P(feature | class) per label, smoothed.
	FeatureLogProb map[core.Label][]float64
}

// FitNaiveBayes estimates class priors and smoothed per-feature
// conditional log-probabilities. It fails with
// DegenerateTrainingDataError when the train split is empty or contains
// a single class.
func FitNaiveBayes(vectors []core.FeatureVector, labels []core.Label, features int, alpha float64) (*NaiveBayes, error) {
	classCounts := make(map[core.Label]int, 2)
	for _, l := range labels {
		classCounts[l]++
	}
	if len(vectors) == 0 || len(classCounts) < 2 {
		return nil, &core.DegenerateTrainingDataError{
			Examples: len(vectors),
			Classes:  len(classCounts),
		}
	}

	// Accumulate per-class feature mass.
	featureMass := make(map[core.Label][]float64, 2)
	totalMass := make(map[core.Label]float64, 2)
	for _, c := range classes {
		featureMass[c] = make([]float64, features)
	}
	for i, vec := range vectors {
		c := labels[i]
		for idx, weight := range vec {
			featureMass[c][idx] += weight
			totalMass[c] += weight
		}
	}

	nb := &NaiveBayes{
		Alpha:          alpha,
		Features:       features,
		LogPrior:       make(map[core.Label]float64, 2),
		FeatureLogProb: make(map[core.Label][]float64, 2),
	}

	total := float64(len(labels))
	for _, c := range classes {
		nb.LogPrior[c] = math.Log(float64(classCounts[c]) / total)

		denom := totalMass[c] + alpha*float64(features)
		logProb := make([]float64, features)
		for idx := 0; idx < features; idx++ {
			logProb[idx] = math.Log((featureMass[c][idx] + alpha) / denom)
		}
		nb.FeatureLogProb[c] = logProb
	}

	return nb, nil
}

// Name identifies the model in reports and logs.
func (nb *NaiveBayes) Name() string {
	return "naive_bayes"
}

// PredictProba returns P(spam) for one feature vector. Per class it sums
// the log prior and the feature-weighted log-likelihoods, then
// normalizes via log-sum-exp so the result is a valid probability and
// never underflows.
func (nb *NaiveBayes) PredictProba(features core.FeatureVector) float64 {
	logHam := nb.LogPrior[core.Ham]
	logSpam := nb.LogPrior[core.Spam]
	for idx, weight := range features {
		if idx < 0 || idx >= nb.Features {
			continue
		}
		logHam += weight * nb.FeatureLogProb[core.Ham][idx]
		logSpam += weight * nb.FeatureLogProb[core.Spam][idx]
	}

	// log-sum-exp with the max factored out
	maxLog := math.Max(logHam, logSpam)
	denom := math.Exp(logHam-maxLog) + math.Exp(logSpam-maxLog)
	return math.Exp(logSpam-maxLog) / denom
}

var _ core.Predictor = (*NaiveBayes)(nil)
