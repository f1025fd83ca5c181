package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
)

func trainingCorpus() core.Corpus {
	var c core.Corpus
	hamTemplates := []string{
		"are we still on for lunch at %d",
		"meeting moved to %dpm",
		"call me when you get home %d",
		"happy birthday hope it is a great one %d",
	}
	for i := 0; i < 174; i++ {
		c = append(c, core.Message{
			Label: core.Ham,
			Text:  fmt.Sprintf(hamTemplates[i%len(hamTemplates)], i),
		})
	}
	spamTemplates := []string{
		"WINNER claim your FREE cash prize now %d",
		"urgent you have won a FREE reward txt %d",
	}
	for i := 0; i < 26; i++ {
		c = append(c, core.Message{
			Label: core.Spam,
			Text:  fmt.Sprintf(spamTemplates[i%len(spamTemplates)], i),
		})
	}
	return c
}

func defaultParams() TrainerParams {
	return TrainerParams{
		TestFraction:    0.2,
		SplitSeed:       42,
		SmoothingAlpha:  1.0,
		SweepStep:       0.01,
		TargetPrecision: 0.99,
	}
}

func TestTrainerRun(t *testing.T) {
	trainer := NewTrainer(textnorm.New(textnorm.DefaultPolicy()), defaultParams(), zap.NewNop())

	result, err := trainer.Run(trainingCorpus())
	require.NoError(t, err)

	// The classifier must clear the imbalance-only baseline.
	assert.Greater(t, result.Comparison.Classifier.Accuracy, result.Comparison.Baseline.Accuracy)
	assert.Greater(t, result.Comparison.Classifier.F1, 0.8)
	assert.Equal(t, 0.0, result.Comparison.Baseline.Recall, "always-ham baseline never finds spam")

	require.NotNil(t, result.Bundle)
	require.NoError(t, result.Bundle.Validate())
	assert.Len(t, result.Curve, 101)

	assert.Equal(t, 200, result.Quality.TotalRows)
	assert.Len(t, result.Split.Test, 40)
}

func TestTrainerDeterministic(t *testing.T) {
	c := trainingCorpus()

	trainer := NewTrainer(textnorm.New(textnorm.DefaultPolicy()), defaultParams(), zap.NewNop())
	first, err := trainer.Run(c)
	require.NoError(t, err)
	second, err := trainer.Run(c)
	require.NoError(t, err)

	assert.Equal(t, first.Split, second.Split)
	assert.Equal(t, first.Bundle.Vocabulary, second.Bundle.Vocabulary)
	assert.Equal(t, first.Bundle.Model, second.Bundle.Model)
	assert.Equal(t, first.Comparison, second.Comparison)
	assert.Equal(t, first.Curve, second.Curve)
}

func TestTrainerDegenerateCorpus(t *testing.T) {
	var c core.Corpus
	for i := 0; i < 50; i++ {
		c = append(c, core.Message{Label: core.Ham, Text: fmt.Sprintf("only ham here %d", i)})
	}

	trainer := NewTrainer(textnorm.New(textnorm.DefaultPolicy()), defaultParams(), zap.NewNop())
	_, err := trainer.Run(c)

	var degenerate *core.DegenerateTrainingDataError
	require.ErrorAs(t, err, &degenerate)
}
