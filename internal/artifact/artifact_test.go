package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textnorm"
	"github.com/mikey/sms-spam-classifier/internal/vectorizer"
)

func fittedBundle(t *testing.T) (*Bundle, core.Corpus) {
	t.Helper()

	c := core.Corpus{
		{Label: core.Ham, Text: "meeting moved to 3pm"},
		{Label: core.Ham, Text: "see you at lunch tomorrow"},
		{Label: core.Ham, Text: "can you call me back"},
		{Label: core.Spam, Text: "WIN a FREE cash prize now"},
		{Label: core.Spam, Text: "claim your FREE prize today"},
	}

	policy := textnorm.Policy{MinTokenLen: 2}
	normalizer := textnorm.New(policy)
	vec := vectorizer.New(normalizer)
	vocab := vec.Fit(c.Texts())

	model, err := classifier.FitNaiveBayes(vec.Transform(c.Texts()), c.Labels(), vocab.Size(), 1.0)
	require.NoError(t, err)
	baseline, err := classifier.FitBaseline(c.Labels())
	require.NoError(t, err)

	return NewBundle(policy, vocab, model, baseline), c
}

func TestSaveLoadRoundTrip(t *testing.T) {
	bundle, c := fittedBundle(t)
	store := NewFileStore(zap.NewNop())
	path := filepath.Join(t.TempDir(), "model.gob")

	require.NoError(t, store.Save(bundle, path))

	loaded, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, bundle.Version, loaded.Version)
	assert.Equal(t, bundle.Policy, loaded.Policy)

	// Scoring the original train set with the reloaded bundle must
	// reproduce the train-time predictions exactly.
	_, origVec := bundle.Components()
	_, loadedVec := loaded.Components()
	for _, m := range c {
		want := bundle.Model.PredictProba(origVec.TransformOne(m.Text))
		got := loaded.Model.PredictProba(loadedVec.TransformOne(m.Text))
		assert.Equal(t, want, got, "prediction drift after reload for %q", m.Text)
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	store := NewFileStore(zap.NewNop())

	_, err := store.Load(filepath.Join(t.TempDir(), "no-such-model.gob"))
	var mismatch *core.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestLoadCorruptedArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0o644))

	store := NewFileStore(zap.NewNop())
	_, err := store.Load(path)
	var mismatch *core.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Bundle)
	}{
		{
			name:   "unsupported version",
			mutate: func(b *Bundle) { b.Version = FormatVersion + 1 },
		},
		{
			name:   "missing vocabulary",
			mutate: func(b *Bundle) { b.Vocabulary = nil },
		},
		{
			name: "idf length mismatch",
			mutate: func(b *Bundle) {
				b.Vocabulary.IDF = b.Vocabulary.IDF[:len(b.Vocabulary.IDF)-1]
			},
		},
		{
			name:   "missing model",
			mutate: func(b *Bundle) { b.Model = nil },
		},
		{
			name:   "feature count mismatch",
			mutate: func(b *Bundle) { b.Model.Features = b.Model.Features + 3 },
		},
		{
			name: "conditional log-probabilities truncated",
			mutate: func(b *Bundle) {
				b.Model.FeatureLogProb[core.Spam] = b.Model.FeatureLogProb[core.Spam][:1]
			},
		},
		{
			name:   "invalid baseline class",
			mutate: func(b *Bundle) { b.Baseline.MajorityClass = "junk" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bundle, _ := fittedBundle(t)
			require.NoError(t, bundle.Validate())

			tt.mutate(bundle)
			err := bundle.Validate()
			var mismatch *core.SchemaMismatchError
			require.ErrorAs(t, err, &mismatch)
		})
	}
}

func TestSaveRefusesInvalidBundle(t *testing.T) {
	bundle, _ := fittedBundle(t)
	bundle.Vocabulary = nil

	store := NewFileStore(zap.NewNop())
	err := store.Save(bundle, filepath.Join(t.TempDir(), "model.gob"))
	require.Error(t, err)
}
