// Package evaluate computes classification metrics on held-out data and
// sweeps decision thresholds into a precision-recall curve.
package evaluate

import (
	"github.com/mikey/sms-spam-classifier/internal/core"
)

// ConfusionMatrix holds the four outcome counts with spam as the
// positive class.
type ConfusionMatrix struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

// Metrics is the structured metrics record for one predictor on one
// test split, consumed by external reporting.
type Metrics struct {
	Predictor string
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Confusion ConfusionMatrix
}

// Comparison reports classifier and baseline metrics side by side. The
// baseline's accuracy (class imbalance alone) is the reference the
// classifier must clear.
type Comparison struct {
	Classifier Metrics
	Baseline   Metrics
}

// ErrorAnalysis partitions misclassified test messages for qualitative
// review: ham flagged as spam versus spam that slipped through.
type ErrorAnalysis struct {
	FalsePositives core.Corpus
	FalseNegatives core.Corpus
}

// Evaluate computes accuracy, precision, recall, F1 and the confusion
// matrix for the spam class. trueLabels and predicted must be aligned.
func Evaluate(name string, trueLabels, predicted []core.Label) Metrics {
	var cm ConfusionMatrix
	for i, truth := range trueLabels {
		switch {
		case truth == core.Spam && predicted[i] == core.Spam:
			cm.TruePositives++
		case truth == core.Ham && predicted[i] == core.Spam:
			cm.FalsePositives++
		case truth == core.Ham && predicted[i] == core.Ham:
			cm.TrueNegatives++
		default:
			cm.FalseNegatives++
		}
	}

	total := len(trueLabels)
	m := Metrics{Predictor: name, Confusion: cm}
	if total > 0 {
		m.Accuracy = float64(cm.TruePositives+cm.TrueNegatives) / float64(total)
	}
	m.Precision = precision(cm.TruePositives, cm.FalsePositives)
	m.Recall = recall(cm.TruePositives, cm.FalseNegatives)
	m.F1 = f1(m.Precision, m.Recall)
	return m
}

// Compare evaluates a classifier and the baseline on the same test
// split.
func Compare(clf, base core.Predictor, vectors []core.FeatureVector, trueLabels []core.Label) Comparison {
	return Comparison{
		Classifier: Evaluate(clf.Name(), trueLabels, predictClasses(clf, vectors)),
		Baseline:   Evaluate(base.Name(), trueLabels, predictClasses(base, vectors)),
	}
}

// PartitionErrors splits misclassified messages into false positives and
// false negatives. messages and predicted must be aligned.
func PartitionErrors(messages core.Corpus, predicted []core.Label) ErrorAnalysis {
	var ea ErrorAnalysis
	for i, m := range messages {
		if m.Label == predicted[i] {
			continue
		}
		if m.Label == core.Ham {
			ea.FalsePositives = append(ea.FalsePositives, m)
		} else {
			ea.FalseNegatives = append(ea.FalseNegatives, m)
		}
	}
	return ea
}

// PredictProbas runs a predictor over a batch of feature vectors.
func PredictProbas(p core.Predictor, vectors []core.FeatureVector) []float64 {
	probs := make([]float64, len(vectors))
	for i, vec := range vectors {
		probs[i] = p.PredictProba(vec)
	}
	return probs
}

func predictClasses(p core.Predictor, vectors []core.FeatureVector) []core.Label {
	labels := make([]core.Label, len(vectors))
	for i, vec := range vectors {
		if p.PredictProba(vec) >= 0.5 {
			labels[i] = core.Spam
		} else {
			labels[i] = core.Ham
		}
	}
	return labels
}

// precision is TP/(TP+FP); with no predicted positives there are no
// false alarms, so it reports 1.0.
func precision(tp, fp int) float64 {
	if tp+fp == 0 {
		return 1.0
	}
	return float64(tp) / float64(tp+fp)
}

func recall(tp, fn int) float64 {
	if tp+fn == 0 {
		return 0.0
	}
	return float64(tp) / float64(tp+fn)
}

func f1(p, r float64) float64 {
	if p+r == 0 {
		return 0.0
	}
	return 2 * p * r / (p + r)
}
