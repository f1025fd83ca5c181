// Package pipeline runs the end-to-end training flow: clean corpus in,
// evaluated model artifact out.
package pipeline

import (
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/corpus"
	"github.com/mikey/sms-spam-classifier/internal/evaluate"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
	"github.com/mikey/sms-spam-classifier/internal/vectorizer"
)

// TrainerParams are the fixed modelling parameters for one training
// run. They come from configuration, never from the data.
type TrainerParams struct {
	TestFraction    float64
	SplitSeed       int64
	SmoothingAlpha  float64
	SweepStep       float64
	TargetPrecision float64
}

// TrainingResult carries everything a training run produces: the
// persistable bundle plus the evaluation outputs consumed by external
// reporting.
type TrainingResult struct {
	Quality     corpus.QualityReport
	Split       core.SplitCorpus
	Comparison  evaluate.Comparison
	Errors      evaluate.ErrorAnalysis
	Curve       evaluate.ThresholdCurve
	Recommended evaluate.OperatingPoints
	Bundle      *artifact.Bundle
}

// Trainer fits the vectorizer and both predictors on the train split
// and evaluates them on the held-out test split.
type Trainer struct {
	normalizer *textnorm.Normalizer
	params     TrainerParams
	logger     *zap.Logger
}

// NewTrainer creates a trainer.
func NewTrainer(normalizer *textnorm.Normalizer, params TrainerParams, logger *zap.Logger) *Trainer {
	return &Trainer{
		normalizer: normalizer,
		params:     params,
		logger:     logger,
	}
}

// Run executes the full pipeline on a cleaned corpus. Each stage
// consumes the complete output of the previous one; the partition and
// every fitted parameter are deterministic for a fixed seed.
func (t *Trainer) Run(c core.Corpus) (*TrainingResult, error) {
	result := &TrainingResult{
		Quality: corpus.Profile(c),
	}

	result.Split = corpus.StratifiedSplit(c, t.params.TestFraction, t.params.SplitSeed)
	t.logger.Info("Corpus split",
		zap.Int("train", len(result.Split.Train)),
		zap.Int("test", len(result.Split.Test)),
		zap.Int64("seed", result.Split.Seed))

	vec := vectorizer.New(t.normalizer)
	vocab := vec.Fit(result.Split.Train.Texts())
	t.logger.Info("Vocabulary fitted",
		zap.Int("features", vocab.Size()),
		zap.Int("documents", vocab.Documents))

	trainVectors := vec.Transform(result.Split.Train.Texts())
	trainLabels := result.Split.Train.Labels()

	model, err := classifier.FitNaiveBayes(trainVectors, trainLabels, vocab.Size(), t.params.SmoothingAlpha)
	if err != nil {
		return nil, err
	}
	baseline, err := classifier.FitBaseline(trainLabels)
	if err != nil {
		return nil, err
	}

	testVectors := vec.Transform(result.Split.Test.Texts())
	testLabels := result.Split.Test.Labels()

	result.Comparison = evaluate.Compare(model, baseline, testVectors, testLabels)
	t.logger.Info("Evaluation complete",
		zap.Float64("classifier_accuracy", result.Comparison.Classifier.Accuracy),
		zap.Float64("baseline_accuracy", result.Comparison.Baseline.Accuracy),
		zap.Float64("classifier_f1", result.Comparison.Classifier.F1))

	predicted := make([]core.Label, len(testVectors))
	probs := evaluate.PredictProbas(model, testVectors)
	for i, p := range probs {
		if p >= 0.5 {
			predicted[i] = core.Spam
		} else {
			predicted[i] = core.Ham
		}
	}
	result.Errors = evaluate.PartitionErrors(result.Split.Test, predicted)

	result.Curve = evaluate.SweepThresholds(testLabels, probs, t.params.SweepStep)
	result.Recommended = result.Curve.Recommend(t.params.TargetPrecision)
	t.logger.Info("Threshold sweep complete",
		zap.Int("points", len(result.Curve)),
		zap.Float64("recommended_block", result.Recommended.Block),
		zap.Float64("recommended_review", result.Recommended.Review))

	result.Bundle = artifact.NewBundle(t.normalizer.Policy(), vocab, model, baseline)
	return result, nil
}
