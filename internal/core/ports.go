package core

import (
	"context"
)

// Predictor is the classification capability shared by the trained
// Naive Bayes model and the majority-class baseline.
type Predictor interface {
	// Name identifies the predictor in reports and logs.
	Name() string

	// PredictProba returns P(spam) for a single feature vector.
	PredictProba(features FeatureVector) float64
}

// Transformer maps raw message text into the frozen feature space the
// predictor was fitted on.
type Transformer interface {
	// TransformOne vectorizes a single raw message. Tokens outside the
	// fitted vocabulary are dropped.
	TransformOne(text string) FeatureVector

	// FeatureCount returns the dimensionality of the fitted space.
	FeatureCount() int
}

// ScoreCache caches per-message scoring results keyed by text hash.
type ScoreCache interface {
	// Get retrieves a cached entry, if present and unexpired.
	Get(ctx context.Context, textHash string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, textHash string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}
