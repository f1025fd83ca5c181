package corpus

import (
	"sort"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// ClassShare is one class's slice of the corpus.
type ClassShare struct {
	Count int
	Pct   float64
}

// LengthStats summarizes message lengths in characters.
type LengthStats struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
}

// QualityReport profiles a cleaned corpus before modelling: row counts,
// residual duplicates, class balance, and message-length distribution
// overall and per class. Consumed by external reporting.
type QualityReport struct {
	TotalRows      int
	DuplicateTexts int
	ClassBalance   map[core.Label]ClassShare
	Lengths        LengthStats
	LengthsByClass map[core.Label]LengthStats
}

// Profile builds a quality report for the corpus.
func Profile(c core.Corpus) QualityReport {
	report := QualityReport{
		TotalRows:      len(c),
		ClassBalance:   make(map[core.Label]ClassShare, 2),
		LengthsByClass: make(map[core.Label]LengthStats, 2),
	}

	seen := make(map[string]struct{}, len(c))
	var allLengths []int
	byClass := make(map[core.Label][]int, 2)
	for _, m := range c {
		if _, dup := seen[m.Text]; dup {
			report.DuplicateTexts++
		}
		seen[m.Text] = struct{}{}

		n := len([]rune(m.Text))
		allLengths = append(allLengths, n)
		byClass[m.Label] = append(byClass[m.Label], n)
	}

	total := len(c)
	for label, count := range c.CountByLabel() {
		share := ClassShare{Count: count}
		if total > 0 {
			share.Pct = float64(count) / float64(total) * 100
		}
		report.ClassBalance[label] = share
	}

	report.Lengths = describeLengths(allLengths)
	for label, lengths := range byClass {
		report.LengthsByClass[label] = describeLengths(lengths)
	}
	return report
}

func describeLengths(lengths []int) LengthStats {
	stats := LengthStats{Count: len(lengths)}
	if len(lengths) == 0 {
		return stats
	}

	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	stats.Mean = float64(sum) / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		stats.Median = float64(sorted[mid])
	} else {
		stats.Median = float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return stats
}
