// Package di wires the scoring stack together with a dig container.
package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/logging"
)

// BuildScorerContainer creates a dependency injection container for the
// scoring path: configuration, logging, the persisted model bundle, the
// score cache, and the scoring service itself.
func BuildScorerContainer(cfg *config.Config) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewNormalizerFactory); err != nil {
		return nil, err
	}

	// Register artifact store and the loaded bundle
	if err := container.Provide(artifact.NewFileStore); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store *artifact.FileStore, cfg *config.Config) (*artifact.Bundle, error) {
		return store.Load(cfg.GetModel().ArtifactPath)
	}); err != nil {
		return nil, err
	}

	// Register the transformer and predictor reconstructed from the bundle
	if err := container.Provide(func(bundle *artifact.Bundle) core.Transformer {
		_, vec := bundle.Components()
		return vec
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(bundle *artifact.Bundle) core.Predictor {
		return bundle.Model
	}); err != nil {
		return nil, err
	}

	// Register score cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ScoreCache, error) {
		return f.CreateScoreCache()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register the scoring service
	if err := container.Provide(func(
		transformer core.Transformer,
		predictor core.Predictor,
		cache core.ScoreCache,
		logger *zap.Logger,
		cfg *config.Config,
		cacheEnabled bool,
		cacheTTL time.Duration,
	) *core.ScoringService {
		thresholds := cfg.GetThresholds()
		return core.NewScoringService(
			transformer,
			predictor,
			cache,
			logger,
			cacheEnabled,
			cacheTTL,
			thresholds.Block,
			thresholds.Review,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
