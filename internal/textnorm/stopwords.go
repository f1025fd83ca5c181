package textnorm

import (
	"strings"
)

// stopWords are common English function words carrying no class signal.
// The list is deliberately short and fixed: changing it changes the
// feature space and invalidates persisted vocabularies.
var stopWords = []string{
	"the", "and", "for", "you", "are", "was", "but", "not", "have",
	"has", "had", "this", "that", "with", "your", "from", "they",
	"will", "what", "when", "then", "them", "there", "can", "all",
	"its", "his", "her", "she", "our", "out", "who", "how", "any",
	"did", "get", "got", "him", "now", "one", "our", "too", "were",
	"been", "being", "into", "just", "more", "some", "than", "very",
}

func stopWordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
