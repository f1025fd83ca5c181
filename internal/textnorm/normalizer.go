// Package textnorm canonicalizes raw message text into the token stream
// the vectorizer and classifier operate on. The same Normalizer value is
// applied at train time and at scoring time; normalization depends only
// on the message text and the fixed policy, never on corpus context.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Policy fixes the normalization choices that materially change model
// output. It is persisted with the model artifact so a scorer always
// tokenizes the way the trainer did.
type Policy struct {
	// MinTokenLen drops tokens shorter than this many runes.
	MinTokenLen int
	// RemoveStopWords drops common English function words.
	RemoveStopWords bool
}

// DefaultPolicy is the policy the trainer uses unless configured
// otherwise: keep tokens of two or more runes, drop stop-words.
func DefaultPolicy() Policy {
	return Policy{
		MinTokenLen:     2,
		RemoveStopWords: true,
	}
}

// Normalizer tokenizes raw message text under a fixed policy.
type Normalizer struct {
	policy    Policy
	stopWords map[string]struct{}
}

// New creates a normalizer for the given policy.
func New(policy Policy) *Normalizer {
	n := &Normalizer{policy: policy}
	if policy.RemoveStopWords {
		n.stopWords = stopWordSet()
	}
	return n
}

// Policy returns the policy the normalizer was built with.
func (n *Normalizer) Policy() Policy {
	return n.policy
}

// Tokenize lowercases the text, strips punctuation and other
// non-alphanumeric runes, collapses whitespace, and applies the policy's
// token filters. Empty input yields an empty slice, not an error.
func (n *Normalizer) Tokenize(text string) []string {
	text = sanitizeUTF8(text)
	text = strings.ToLower(text)

	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) < n.policy.MinTokenLen {
			continue
		}
		if n.stopWords != nil {
			if _, stop := n.stopWords[tok]; stop {
				continue
			}
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// sanitizeUTF8 drops invalid UTF-8 sequences so tokenization never sees
// replacement garbage from mis-encoded input.
func sanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	result := make([]rune, 0, len(text))
	for i, r := range text {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(text[i:])
			if size == 1 {
				continue
			}
		}
		result = append(result, r)
	}
	return string(result)
}
