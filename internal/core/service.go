package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ScoringService applies a fitted transformer and predictor to raw
// messages and maps spam probabilities to content-trust decisions.
type ScoringService struct {
	transformer     Transformer
	predictor       Predictor
	cache           ScoreCache
	logger          *zap.Logger
	cacheEnabled    bool
	cacheTTL        time.Duration
	blockThreshold  float64
	reviewThreshold float64
}

// NewScoringService creates a new scoring service.
func NewScoringService(
	transformer Transformer,
	predictor Predictor,
	cache ScoreCache,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	blockThreshold float64,
	reviewThreshold float64,
) *ScoringService {
	return &ScoringService{
		transformer:     transformer,
		predictor:       predictor,
		cache:           cache,
		logger:          logger,
		cacheEnabled:    cacheEnabled,
		cacheTTL:        cacheTTL,
		blockThreshold:  blockThreshold,
		reviewThreshold: reviewThreshold,
	}
}

// Decide maps a spam probability to a decision using the configured
// operating thresholds.
func (s *ScoringService) Decide(spamProbability float64) Decision {
	switch {
	case spamProbability >= s.blockThreshold:
		return DecisionBlock
	case spamProbability >= s.reviewThreshold:
		return DecisionReview
	default:
		return DecisionPass
	}
}

// ScoreMessage scores a single raw message.
func (s *ScoringService) ScoreMessage(ctx context.Context, text string) (*ScoredMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InvalidInputError{Reason: "empty message text"}
	}

	textHash := hashText(text)

	// Check cache if enabled
	if s.cacheEnabled {
		if entry, err := s.cache.Get(ctx, textHash); err == nil && entry != nil {
			s.logger.Debug("Cache hit for message", zap.String("text_hash", textHash))
			return &ScoredMessage{
				Text: text,
				Prediction: Prediction{
					Class:           entry.Class,
					SpamProbability: entry.SpamScore,
				},
				Decision:  s.Decide(entry.SpamScore),
				ScoredAt:  time.Now(),
				FromCache: true,
			}, nil
		}
	}

	features := s.transformer.TransformOne(text)
	spamProb := s.predictor.PredictProba(features)

	class := Ham
	if spamProb >= 0.5 {
		class = Spam
	}

	result := &ScoredMessage{
		Text: text,
		Prediction: Prediction{
			Class:           class,
			SpamProbability: spamProb,
		},
		Decision: s.Decide(spamProb),
		ScoredAt: time.Now(),
	}

	// Update cache with result if enabled
	if s.cacheEnabled {
		entry := &CacheEntry{
			TextHash:  textHash,
			Class:     class,
			SpamScore: spamProb,
			LastSeen:  time.Now(),
			ExpiresAt: time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update score cache", zap.Error(err))
		}
	}

	return result, nil
}

// ScoreBatch scores a batch of raw messages, fanning out across at most
// workers goroutines. Results preserve input order; a nil slot marks a
// message that was skipped as invalid.
func (s *ScoringService) ScoreBatch(ctx context.Context, texts []string, workers int) []*ScoredMessage {
	if workers < 1 {
		workers = 1
	}

	results := make([]*ScoredMessage, len(texts))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scored, err := s.ScoreMessage(ctx, texts[i])
				if err != nil {
					s.logger.Warn("Skipping message",
						zap.Int("index", i),
						zap.Error(err))
					continue
				}
				results[i] = scored
			}
		}()
	}

	for i := range texts {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// hashText returns the cache key for a message body.
func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
