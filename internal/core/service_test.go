package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubTransformer returns a fixed single-feature vector per text length,
// enough to drive the predictor stub.
type stubTransformer struct{}

func (stubTransformer) TransformOne(text string) FeatureVector {
	return FeatureVector{0: float64(len(text))}
}

func (stubTransformer) FeatureCount() int { return 1 }

// stubPredictor maps known texts to fixed spam probabilities.
type stubPredictor struct {
	mu    sync.Mutex
	probs map[float64]float64 // feature value -> P(spam)
	calls int
}

func (p *stubPredictor) Name() string { return "stub" }

func (p *stubPredictor) PredictProba(features FeatureVector) float64 {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	if prob, ok := p.probs[features[0]]; ok {
		return prob
	}
	return 0.0
}

// mapCache is a minimal in-memory ScoreCache for service tests.
type mapCache struct {
	entries map[string]*CacheEntry
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]*CacheEntry)}
}

func (c *mapCache) Get(_ context.Context, textHash string) (*CacheEntry, error) {
	if entry, ok := c.entries[textHash]; ok {
		return entry, nil
	}
	return nil, assert.AnError
}

func (c *mapCache) Set(_ context.Context, entry *CacheEntry) error {
	c.entries[entry.TextHash] = entry
	return nil
}

func (c *mapCache) Delete(_ context.Context, textHash string) error {
	delete(c.entries, textHash)
	return nil
}

func (c *mapCache) Cleanup(_ context.Context) error { return nil }

func newTestService(predictor Predictor, cache ScoreCache, cacheEnabled bool) *ScoringService {
	return NewScoringService(
		stubTransformer{},
		predictor,
		cache,
		zap.NewNop(),
		cacheEnabled,
		time.Hour,
		0.95, // block
		0.5,  // review
	)
}

func TestDecide(t *testing.T) {
	svc := newTestService(&stubPredictor{}, newMapCache(), false)

	tests := []struct {
		prob float64
		want Decision
	}{
		{0.0, DecisionPass},
		{0.49, DecisionPass},
		{0.5, DecisionReview},
		{0.94, DecisionReview},
		{0.95, DecisionBlock},
		{1.0, DecisionBlock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.Decide(tt.prob), "prob %.2f", tt.prob)
	}
}

func TestScoreMessage(t *testing.T) {
	text := "FREE prize"
	predictor := &stubPredictor{probs: map[float64]float64{float64(len(text)): 0.97}}
	svc := newTestService(predictor, newMapCache(), false)

	result, err := svc.ScoreMessage(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, Spam, result.Prediction.Class)
	assert.Equal(t, 0.97, result.Prediction.SpamProbability)
	assert.Equal(t, DecisionBlock, result.Decision)
	assert.False(t, result.FromCache)
}

func TestScoreMessageEmptyText(t *testing.T) {
	svc := newTestService(&stubPredictor{}, newMapCache(), false)

	_, err := svc.ScoreMessage(context.Background(), "   ")
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
}

func TestScoreMessageCacheHit(t *testing.T) {
	text := "repeat offender"
	predictor := &stubPredictor{probs: map[float64]float64{float64(len(text)): 0.8}}
	svc := newTestService(predictor, newMapCache(), true)

	first, err := svc.ScoreMessage(context.Background(), text)
	require.NoError(t, err)
	require.False(t, first.FromCache)
	require.Equal(t, 1, predictor.calls)

	second, err := svc.ScoreMessage(context.Background(), text)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Prediction, second.Prediction)
	assert.Equal(t, first.Decision, second.Decision)
	assert.Equal(t, 1, predictor.calls, "cache hit must skip the predictor")
}

func TestScoreBatchPreservesOrder(t *testing.T) {
	texts := []string{"aa", "bbbb", "", "cccccc"}
	predictor := &stubPredictor{probs: map[float64]float64{
		2: 0.1,
		4: 0.6,
		6: 0.99,
	}}
	svc := newTestService(predictor, newMapCache(), false)

	results := svc.ScoreBatch(context.Background(), texts, 3)
	require.Len(t, results, 4)

	require.NotNil(t, results[0])
	assert.Equal(t, 0.1, results[0].Prediction.SpamProbability)
	require.NotNil(t, results[1])
	assert.Equal(t, 0.6, results[1].Prediction.SpamProbability)
	assert.Nil(t, results[2], "invalid message is skipped, not fatal")
	require.NotNil(t, results[3])
	assert.Equal(t, 0.99, results[3].Prediction.SpamProbability)
}
