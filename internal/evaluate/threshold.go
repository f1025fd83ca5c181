package evaluate

import (
	"math"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// ThresholdPoint is one entry of the precision-recall trade-off curve.
type ThresholdPoint struct {
	Threshold float64
	Precision float64
	Recall    float64
	F1        float64
}

// ThresholdCurve is the ordered sweep of threshold points from 0 to 1.
// Precision is reported as the interpolated envelope (running maximum
// over looser thresholds), which keeps the curve monotone: precision
// non-decreasing and recall non-increasing as the threshold rises.
type ThresholdCurve []ThresholdPoint

// OperatingPoints are the advisory thresholds derived from a curve.
// Selection policy lives downstream; these are recommendations only.
type OperatingPoints struct {
	// Block is the lowest threshold whose precision reaches the target,
	// suitable for auto-blocking.
	Block float64
	// Review is the threshold with the best F1, trading recall against
	// precision for flag-for-review.
	Review float64
}

// SweepThresholds evaluates P(spam) >= t as a positive prediction for
// each t on a fixed grid from 0 to 1 with the given step.
func SweepThresholds(trueLabels []core.Label, spamProbs []float64, step float64) ThresholdCurve {
	if step <= 0 {
		step = 0.01
	}

	var curve ThresholdCurve
	for t := 0.0; t <= 1.0+step/2; t += step {
		threshold := math.Min(t, 1.0)

		var tp, fp, fn int
		for i, truth := range trueLabels {
			positive := spamProbs[i] >= threshold
			switch {
			case positive && truth == core.Spam:
				tp++
			case positive && truth == core.Ham:
				fp++
			case !positive && truth == core.Spam:
				fn++
			}
		}

		p := precision(tp, fp)
		r := recall(tp, fn)
		curve = append(curve, ThresholdPoint{
			Threshold: threshold,
			Precision: p,
			Recall:    r,
			F1:        f1(p, r),
		})
	}

	// Interpolate precision as the running maximum over all looser
	// thresholds, so tightening the threshold never reports a precision
	// drop.
	maxP := 0.0
	for i := range curve {
		if curve[i].Precision > maxP {
			maxP = curve[i].Precision
		} else {
			curve[i].Precision = maxP
			curve[i].F1 = f1(curve[i].Precision, curve[i].Recall)
		}
	}

	return curve
}

// Recommend derives operating points from the curve: the lowest
// threshold whose precision reaches targetPrecision for auto-block, and
// the best-F1 threshold for flag-for-review.
func (c ThresholdCurve) Recommend(targetPrecision float64) OperatingPoints {
	op := OperatingPoints{Block: 1.0, Review: 0.5}

	for _, pt := range c {
		if pt.Precision >= targetPrecision {
			op.Block = pt.Threshold
			break
		}
	}

	bestF1 := -1.0
	for _, pt := range c {
		if pt.F1 > bestF1 {
			bestF1 = pt.F1
			op.Review = pt.Threshold
		}
	}
	return op
}
