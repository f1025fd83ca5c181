package corpus

import (
	"math"
	"math/rand"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// StratifiedSplit partitions the corpus once into disjoint train and
// test splits, sampling each class independently so both splits keep
// the full corpus's class balance. The seed fixes the partition across
// runs; messages keep their corpus order within each split.
func StratifiedSplit(c core.Corpus, testFraction float64, seed int64) core.SplitCorpus {
	if testFraction < 0 {
		testFraction = 0
	}
	if testFraction > 1 {
		testFraction = 1
	}

	rng := rand.New(rand.NewSource(seed))

	byClass := make(map[core.Label][]int, 2)
	for i, m := range c {
		byClass[m.Label] = append(byClass[m.Label], i)
	}

	inTest := make(map[int]bool, len(c))
	for _, label := range []core.Label{core.Ham, core.Spam} {
		indices := append([]int(nil), byClass[label]...)
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
		take := int(math.Round(float64(len(indices)) * testFraction))
		for _, idx := range indices[:take] {
			inTest[idx] = true
		}
	}

	split := core.SplitCorpus{Seed: seed}
	for i, m := range c {
		if inTest[i] {
			split.Test = append(split.Test, m)
		} else {
			split.Train = append(split.Train, m)
		}
	}
	return split
}
