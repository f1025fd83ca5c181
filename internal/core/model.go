package core

import (
	"time"
)

// Label is the class assigned to a message.
type Label string

const (
	// Ham is a legitimate, non-spam message.
	Ham Label = "ham"
	// Spam is an unsolicited message.
	Spam Label = "spam"
)

// Valid reports whether the label is one of the two known classes.
func (l Label) Valid() bool {
	return l == Ham || l == Spam
}

// Message is a single labeled SMS record.
type Message struct {
	Label Label
	Text  string
}

// Corpus is an ordered collection of messages.
type Corpus []Message

// Texts returns the message bodies in corpus order.
func (c Corpus) Texts() []string {
	texts := make([]string, len(c))
	for i, m := range c {
		texts[i] = m.Text
	}
	return texts
}

// Labels returns the message labels in corpus order.
func (c Corpus) Labels() []Label {
	labels := make([]Label, len(c))
	for i, m := range c {
		labels[i] = m.Label
	}
	return labels
}

// CountByLabel tallies messages per class.
func (c Corpus) CountByLabel() map[Label]int {
	counts := make(map[Label]int, 2)
	for _, m := range c {
		counts[m.Label]++
	}
	return counts
}

// SplitCorpus holds the one-time train/test partition of a corpus.
// The two splits are disjoint and their class balance approximates
// the full corpus's.
type SplitCorpus struct {
	Train Corpus
	Test  Corpus
	Seed  int64
}

// FeatureVector is a sparse TF-IDF weighted vector mapping vocabulary
// feature index to weight. Indices absent from the map carry weight zero.
type FeatureVector map[int]float64

// Decision is the content-trust action derived from a spam probability
// and the configured operating thresholds.
type Decision string

const (
	// DecisionPass lets the message through untouched.
	DecisionPass Decision = "pass"
	// DecisionReview flags the message for human review.
	DecisionReview Decision = "review"
	// DecisionBlock rejects the message outright.
	DecisionBlock Decision = "block"
)

// Prediction is the per-message classifier output.
type Prediction struct {
	Class           Label
	SpamProbability float64
}

// ScoredMessage is the scorer's per-message result, including the
// threshold-derived decision.
type ScoredMessage struct {
	Text       string
	Prediction Prediction
	Decision   Decision
	ScoredAt   time.Time
	FromCache  bool
}

// CacheEntry is a cached scoring result for a previously seen message.
type CacheEntry struct {
	TextHash  string
	Class     Label
	SpamScore float64
	LastSeen  time.Time
	ExpiresAt time.Time
}
