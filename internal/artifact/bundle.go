// Package artifact persists the fitted (vocabulary, model) pair as one
// versioned bundle and validates it on load, so a scorer can never run
// against a feature space it was not fitted for.
package artifact

import (
	"fmt"
	"time"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
	"github.com/mikey/sms-spam-classifier/internal/vectorizer"
)

// FormatVersion is bumped whenever the bundle layout or the semantics
// of any persisted parameter change incompatibly.
const FormatVersion = 1

// Bundle is the single serialized artifact a trainer writes and a
// scorer loads: normalization policy, frozen vocabulary with IDF
// weights, the fitted Naive Bayes parameters, and the baseline.
type Bundle struct {
	Version    int
	TrainedAt  time.Time
	Policy     textnorm.Policy
	Vocabulary *vectorizer.Vocabulary
	Model      *classifier.NaiveBayes
	Baseline   *classifier.Baseline
}

// NewBundle assembles a bundle from freshly fitted components.
func NewBundle(policy textnorm.Policy, vocab *vectorizer.Vocabulary, model *classifier.NaiveBayes, baseline *classifier.Baseline) *Bundle {
	return &Bundle{
		Version:    FormatVersion,
		TrainedAt:  time.Now().UTC(),
		Policy:     policy,
		Vocabulary: vocab,
		Model:      model,
		Baseline:   baseline,
	}
}

// Validate checks the bundle for structural integrity and internal
// consistency. Any failure is a SchemaMismatchError: the artifact must
// not be scored against.
func (b *Bundle) Validate() error {
	if b.Version != FormatVersion {
		return &core.SchemaMismatchError{
			Reason: fmt.Sprintf("unsupported format version %d (want %d)", b.Version, FormatVersion),
		}
	}
	if b.Vocabulary == nil || len(b.Vocabulary.Terms) == 0 {
		return &core.SchemaMismatchError{Reason: "vocabulary is absent or empty"}
	}
	if len(b.Vocabulary.IDF) != len(b.Vocabulary.Terms) {
		return &core.SchemaMismatchError{
			Reason: fmt.Sprintf("idf length %d does not match %d vocabulary terms", len(b.Vocabulary.IDF), len(b.Vocabulary.Terms)),
		}
	}
	if len(b.Vocabulary.Index) != len(b.Vocabulary.Terms) {
		return &core.SchemaMismatchError{
			Reason: fmt.Sprintf("index size %d does not match %d vocabulary terms", len(b.Vocabulary.Index), len(b.Vocabulary.Terms)),
		}
	}
	if b.Model == nil {
		return &core.SchemaMismatchError{Reason: "model parameters are absent"}
	}
	if b.Model.Features != b.Vocabulary.Size() {
		return &core.SchemaMismatchError{
			Reason: fmt.Sprintf("model expects %d features, vocabulary has %d", b.Model.Features, b.Vocabulary.Size()),
		}
	}
	for _, label := range []core.Label{core.Ham, core.Spam} {
		if _, ok := b.Model.LogPrior[label]; !ok {
			return &core.SchemaMismatchError{Reason: fmt.Sprintf("missing log prior for class %q", label)}
		}
		if len(b.Model.FeatureLogProb[label]) != b.Model.Features {
			return &core.SchemaMismatchError{
				Reason: fmt.Sprintf("conditional log-probabilities for class %q have wrong length", label),
			}
		}
	}
	if b.Baseline != nil && !b.Baseline.MajorityClass.Valid() {
		return &core.SchemaMismatchError{Reason: fmt.Sprintf("invalid baseline majority class %q", b.Baseline.MajorityClass)}
	}
	return nil
}

// Components reconstructs the scoring pipeline from the bundle: the
// normalizer and the fitted vectorizer the model was trained with.
func (b *Bundle) Components() (*textnorm.Normalizer, *vectorizer.Vectorizer) {
	normalizer := textnorm.New(b.Policy)
	return normalizer, vectorizer.NewFitted(normalizer, b.Vocabulary)
}
