package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		text   string
		want   []string
	}{
		{
			name:   "lowercases and strips punctuation",
			policy: Policy{MinTokenLen: 2},
			text:   "WINNER!! Claim your £1000 prize, NOW.",
			want:   []string{"winner", "claim", "your", "1000", "prize", "now"},
		},
		{
			name:   "collapses whitespace",
			policy: Policy{MinTokenLen: 2},
			text:   "meeting   moved\tto\n3pm",
			want:   []string{"meeting", "moved", "to", "3pm"},
		},
		{
			name:   "drops short tokens",
			policy: Policy{MinTokenLen: 3},
			text:   "go to the gym at 6",
			want:   []string{"the", "gym"},
		},
		{
			name:   "removes stop words",
			policy: Policy{MinTokenLen: 2, RemoveStopWords: true},
			text:   "you are the winner of the prize",
			want:   []string{"winner", "of", "prize"},
		},
		{
			name:   "empty input yields empty tokens",
			policy: Policy{MinTokenLen: 2},
			text:   "",
			want:   []string{},
		},
		{
			name:   "punctuation only yields empty tokens",
			policy: Policy{MinTokenLen: 2},
			text:   "!!! ... ???",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.policy).Tokenize(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeIdempotent(t *testing.T) {
	n := New(DefaultPolicy())

	texts := []string{
		"WINNER!! Claim your £1000 prize, NOW.",
		"meeting moved to 3pm",
		"Free entry in 2 a wkly comp to win FA Cup final tkts",
		"",
	}
	for _, text := range texts {
		first := n.Tokenize(text)
		rejoined := strings.Join(first, " ")
		assert.Equal(t, first, n.Tokenize(rejoined), "re-normalizing rejoined output must not change tokens: %q", text)
	}
}

func TestTokenizePure(t *testing.T) {
	n := New(DefaultPolicy())

	// Same input, same output, regardless of what was tokenized before.
	want := n.Tokenize("free cash prize")
	n.Tokenize("completely unrelated message with new tokens")
	assert.Equal(t, want, n.Tokenize("free cash prize"))
}

func TestTokenizeInvalidUTF8(t *testing.T) {
	n := New(Policy{MinTokenLen: 2})

	got := n.Tokenize("hello \xff\xfe world")
	assert.Equal(t, []string{"hello", "world"}, got)
}
