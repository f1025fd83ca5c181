package corpus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

func imbalancedCorpus() core.Corpus {
	var c core.Corpus
	for i := 0; i < 87; i++ {
		c = append(c, core.Message{Label: core.Ham, Text: fmt.Sprintf("ham message %d", i)})
	}
	for i := 0; i < 13; i++ {
		c = append(c, core.Message{Label: core.Spam, Text: fmt.Sprintf("spam message %d", i)})
	}
	return c
}

func TestStratifiedSplitSizesAndBalance(t *testing.T) {
	c := imbalancedCorpus()
	split := StratifiedSplit(c, 0.2, 42)

	// Each class is sampled independently: round(87*0.2)=17 ham and
	// round(13*0.2)=3 spam land in the test split.
	require.Len(t, split.Test, 20)
	require.Len(t, split.Train, 80)

	testCounts := split.Test.CountByLabel()
	assert.Equal(t, 17, testCounts[core.Ham])
	assert.Equal(t, 3, testCounts[core.Spam])

	trainCounts := split.Train.CountByLabel()
	assert.Equal(t, 70, trainCounts[core.Ham])
	assert.Equal(t, 10, trainCounts[core.Spam])
}

func TestStratifiedSplitDisjoint(t *testing.T) {
	c := imbalancedCorpus()
	split := StratifiedSplit(c, 0.2, 42)

	seen := make(map[string]struct{})
	for _, m := range split.Train {
		seen[m.Text] = struct{}{}
	}
	for _, m := range split.Test {
		_, overlap := seen[m.Text]
		require.False(t, overlap, "message %q appears in both splits", m.Text)
	}
	assert.Equal(t, len(c), len(split.Train)+len(split.Test))
}

func TestStratifiedSplitDeterministic(t *testing.T) {
	c := imbalancedCorpus()

	first := StratifiedSplit(c, 0.2, 42)
	second := StratifiedSplit(c, 0.2, 42)
	assert.Equal(t, first, second, "fixed seed must reproduce the partition")

	other := StratifiedSplit(c, 0.2, 7)
	assert.NotEqual(t, first.Test, other.Test, "different seeds should partition differently")
}

func TestStratifiedSplitEdges(t *testing.T) {
	c := imbalancedCorpus()

	all := StratifiedSplit(c, 1.0, 42)
	assert.Empty(t, all.Train)
	assert.Len(t, all.Test, len(c))

	none := StratifiedSplit(c, 0.0, 42)
	assert.Empty(t, none.Test)
	assert.Len(t, none.Train, len(c))
}
