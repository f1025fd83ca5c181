// Package vectorizer builds a fixed vocabulary from training text and
// maps messages into sparse TF-IDF feature vectors over it.
package vectorizer

import (
	"math"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
)

// Vocabulary is the frozen token-to-feature-index mapping plus the IDF
// weight per feature, both computed from the train split only. It never
// grows after fitting: unseen tokens at transform time are dropped.
type Vocabulary struct {
	// Index maps a normalized token to its feature index. Indices are
	// assigned in first-seen document order for determinism.
	Index map[string]int
	// Terms holds the token for each feature index, inverse of Index.
	Terms []string
	// IDF holds the inverse document frequency per feature index,
	// smoothed so no weight is ever zero or infinite.
	IDF []float64
	// Documents is the number of training documents the vocabulary was
	// fitted on.
	Documents int
}

// Size returns the number of features in the vocabulary.
func (v *Vocabulary) Size() int {
	return len(v.Terms)
}

// Vectorizer fits a vocabulary and transforms text against it. A
// vectorizer is either unfitted (Fit must be called) or reconstructed
// from a persisted vocabulary via NewFitted.
type Vectorizer struct {
	normalizer *textnorm.Normalizer
	vocab      *Vocabulary
}

// New creates an unfitted vectorizer.
func New(normalizer *textnorm.Normalizer) *Vectorizer {
	return &Vectorizer{normalizer: normalizer}
}

// NewFitted reconstructs a vectorizer from a persisted vocabulary, for
// scoring without refitting.
func NewFitted(normalizer *textnorm.Normalizer, vocab *Vocabulary) *Vectorizer {
	return &Vectorizer{normalizer: normalizer, vocab: vocab}
}

// Fit scans the training texts, assigns feature indices in first-seen
// order, and computes smoothed IDF weights from document frequencies.
// The resulting vocabulary is frozen.
func (v *Vectorizer) Fit(texts []string) *Vocabulary {
	index := make(map[string]int)
	var terms []string
	docFreq := make(map[int]int)

	for _, text := range texts {
		tokens := v.normalizer.Tokenize(text)
		seen := make(map[int]struct{}, len(tokens))
		for _, tok := range tokens {
			idx, ok := index[tok]
			if !ok {
				idx = len(terms)
				index[tok] = idx
				terms = append(terms, tok)
			}
			seen[idx] = struct{}{}
		}
		for idx := range seen {
			docFreq[idx]++
		}
	}

	// Smoothed IDF: log((1+N)/(1+df)) + 1. The +1 terms keep weights
	// finite for unseen combinations and positive for ubiquitous tokens.
	n := float64(len(texts))
	idf := make([]float64, len(terms))
	for idx := range terms {
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[idx]))) + 1
	}

	v.vocab = &Vocabulary{
		Index:     index,
		Terms:     terms,
		IDF:       idf,
		Documents: len(texts),
	}
	return v.vocab
}

// Vocabulary returns the fitted vocabulary, or nil before Fit.
func (v *Vectorizer) Vocabulary() *Vocabulary {
	return v.vocab
}

// FeatureCount returns the dimensionality of the fitted feature space.
func (v *Vectorizer) FeatureCount() int {
	if v.vocab == nil {
		return 0
	}
	return v.vocab.Size()
}

// TransformOne maps a single message into the fitted feature space.
// Tokens outside the vocabulary are dropped, never added.
func (v *Vectorizer) TransformOne(text string) core.FeatureVector {
	tokens := v.normalizer.Tokenize(text)
	features := make(core.FeatureVector)
	if len(tokens) == 0 {
		return features
	}

	counts := make(map[int]int)
	for _, tok := range tokens {
		if idx, ok := v.vocab.Index[tok]; ok {
			counts[idx]++
		}
	}

	total := float64(len(tokens))
	for idx, count := range counts {
		tf := float64(count) / total
		features[idx] = tf * v.vocab.IDF[idx]
	}
	return features
}

// Transform maps a batch of messages into the fitted feature space.
// Applied to the fit texts it reproduces the fit-time features exactly.
func (v *Vectorizer) Transform(texts []string) []core.FeatureVector {
	vectors := make([]core.FeatureVector, len(texts))
	for i, text := range texts {
		vectors[i] = v.TransformOne(text)
	}
	return vectors
}
