// Package corpus loads, cleans, and partitions the labeled SMS corpus.
package corpus

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// LoadStats summarizes what cleaning did to the raw file.
type LoadStats struct {
	RawRows    int
	Skipped    int
	Duplicates int
	Kept       int
}

// Loader reads a raw corpus file into a cleaned, de-duplicated corpus.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a corpus loader.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a labeled corpus from path. The raw SMS Spam Collection
// ships as latin-1 encoded text, either tab-separated (label\ttext) or
// comma-separated with a v1,v2 header plus junk columns; both forms are
// accepted and standardized to (label, text). Malformed records are
// skipped with a warning; exact-duplicate texts are dropped keeping the
// first occurrence.
func (l *Loader) Load(path string) (core.Corpus, *LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	return l.Read(f)
}

// Read parses a raw corpus from r. See Load for the accepted formats.
func (l *Loader) Read(r io.Reader) (core.Corpus, *LoadStats, error) {
	// Latin-1 never fails to decode, which is why the original dataset
	// is distributed in it; byte values above ASCII map to the matching
	// Unicode code points.
	decoded := bufio.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))

	first, err := decoded.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	if bytesContainTab(first) {
		return l.readTSV(decoded)
	}
	return l.readCSV(decoded)
}

func bytesContainTab(b []byte) bool {
	for _, c := range b {
		if c == '\t' {
			return true
		}
		if c == '\n' {
			break
		}
	}
	return false
}

func (l *Loader) readTSV(r io.Reader) (core.Corpus, *LoadStats, error) {
	stats := &LoadStats{}
	var records []core.Message

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		stats.RawRows++

		parts := strings.SplitN(text, "\t", 2)
		if len(parts) != 2 {
			l.warnSkip(line, "missing tab separator")
			stats.Skipped++
			continue
		}
		msg, err := buildMessage(parts[0], parts[1], line)
		if err != nil {
			l.warnSkipErr(err)
			stats.Skipped++
			continue
		}
		records = append(records, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	return l.dedupe(records, stats), stats, nil
}

func (l *Loader) readCSV(r io.Reader) (core.Corpus, *LoadStats, error) {
	stats := &LoadStats{}
	var records []core.Message

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // the Kaggle export carries ragged junk columns
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse corpus csv: %w", err)
		}
		line++

		// Skip the v1,v2 header row; junk columns past the first two are
		// dropped.
		if line == 1 && len(row) >= 2 && !core.Label(strings.ToLower(row[0])).Valid() {
			continue
		}
		stats.RawRows++

		if len(row) < 2 {
			l.warnSkip(line, "fewer than two columns")
			stats.Skipped++
			continue
		}
		msg, err := buildMessage(row[0], row[1], line)
		if err != nil {
			l.warnSkipErr(err)
			stats.Skipped++
			continue
		}
		records = append(records, msg)
	}

	return l.dedupe(records, stats), stats, nil
}

// dedupe removes exact-duplicate message texts, keeping the first
// occurrence. Duplicates shared across a later train/test split would
// leak labels, so they are removed here, upstream of vectorization.
func (l *Loader) dedupe(records []core.Message, stats *LoadStats) core.Corpus {
	seen := make(map[string]struct{}, len(records))
	corpus := make(core.Corpus, 0, len(records))
	for _, m := range records {
		if _, dup := seen[m.Text]; dup {
			stats.Duplicates++
			continue
		}
		seen[m.Text] = struct{}{}
		corpus = append(corpus, m)
	}
	stats.Kept = len(corpus)

	l.logger.Info("Corpus loaded",
		zap.Int("raw_rows", stats.RawRows),
		zap.Int("skipped", stats.Skipped),
		zap.Int("duplicates_removed", stats.Duplicates),
		zap.Int("kept", stats.Kept))
	return corpus
}

func buildMessage(rawLabel, rawText string, line int) (core.Message, error) {
	label := core.Label(strings.ToLower(strings.TrimSpace(rawLabel)))
	if !label.Valid() {
		return core.Message{}, &core.InvalidInputError{Line: line, Reason: fmt.Sprintf("unknown label %q", rawLabel)}
	}
	text := strings.TrimSpace(rawText)
	if text == "" {
		return core.Message{}, &core.InvalidInputError{Line: line, Reason: "empty message text"}
	}
	return core.Message{Label: label, Text: text}, nil
}

func (l *Loader) warnSkip(line int, reason string) {
	l.logger.Warn("Skipping malformed record",
		zap.Int("line", line),
		zap.String("reason", reason))
}

func (l *Loader) warnSkipErr(err error) {
	l.logger.Warn("Skipping malformed record", zap.Error(err))
}
