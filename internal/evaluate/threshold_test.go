package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

func sweepFixture() ([]core.Label, []float64) {
	trueLabels := []core.Label{
		core.Spam, core.Spam, core.Spam, core.Spam, core.Spam,
		core.Ham, core.Ham, core.Ham, core.Ham, core.Ham,
		core.Ham, core.Ham, core.Ham, core.Ham, core.Ham,
	}
	probs := []float64{
		0.99, 0.95, 0.85, 0.60, 0.40,
		0.70, 0.30, 0.20, 0.15, 0.10,
		0.08, 0.05, 0.04, 0.02, 0.01,
	}
	return trueLabels, probs
}

func TestSweepThresholdsGrid(t *testing.T) {
	trueLabels, probs := sweepFixture()

	curve := SweepThresholds(trueLabels, probs, 0.01)
	require.Len(t, curve, 101)
	assert.Equal(t, 0.0, curve[0].Threshold)
	assert.InDelta(t, 1.0, curve[len(curve)-1].Threshold, 1e-9)

	// At threshold 0 everything is positive: recall 1, precision = spam
	// share of the corpus.
	assert.Equal(t, 1.0, curve[0].Recall)
	assert.InDelta(t, 5.0/15.0, curve[0].Precision, 1e-9)
}

func TestThresholdCurveMonotonic(t *testing.T) {
	trueLabels, probs := sweepFixture()

	curve := SweepThresholds(trueLabels, probs, 0.01)
	for i := 1; i < len(curve); i++ {
		assert.GreaterOrEqual(t, curve[i].Precision, curve[i-1].Precision,
			"precision must be non-decreasing at threshold %.2f", curve[i].Threshold)
		assert.LessOrEqual(t, curve[i].Recall, curve[i-1].Recall,
			"recall must be non-increasing at threshold %.2f", curve[i].Threshold)
	}
}

func TestSweepPerfectSeparation(t *testing.T) {
	trueLabels := []core.Label{core.Spam, core.Spam, core.Ham, core.Ham}
	probs := []float64{0.9, 0.8, 0.2, 0.1}

	curve := SweepThresholds(trueLabels, probs, 0.1)
	for _, pt := range curve {
		if pt.Threshold > 0.2 && pt.Threshold <= 0.8 {
			assert.Equal(t, 1.0, pt.Precision, "threshold %.1f", pt.Threshold)
			assert.Equal(t, 1.0, pt.Recall, "threshold %.1f", pt.Threshold)
		}
	}
}

func TestRecommend(t *testing.T) {
	trueLabels, probs := sweepFixture()
	curve := SweepThresholds(trueLabels, probs, 0.01)

	op := curve.Recommend(0.99)
	assert.GreaterOrEqual(t, op.Block, op.Review,
		"auto-block must never be looser than flag-for-review")

	// The block threshold must actually deliver the target precision.
	for _, pt := range curve {
		if pt.Threshold == op.Block {
			assert.GreaterOrEqual(t, pt.Precision, 0.99)
		}
	}
}

func TestSweepDefaultsStep(t *testing.T) {
	trueLabels, probs := sweepFixture()
	curve := SweepThresholds(trueLabels, probs, 0)
	require.Len(t, curve, 101)
}
