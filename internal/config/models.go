package config

// CorpusConfig represents the configuration for corpus loading and splitting
type CorpusConfig struct {
	Path         string
	TestFraction float64
	SplitSeed    int64
}

// NormalizerConfig represents the text normalization policy
type NormalizerConfig struct {
	MinTokenLen     int
	RemoveStopWords bool
}

// ModelConfig represents the configuration for model fitting and persistence
type ModelConfig struct {
	SmoothingAlpha float64
	ArtifactPath   string
}

// ThresholdConfig represents the threshold sweep and operating points
type ThresholdConfig struct {
	SweepStep       float64
	TargetPrecision float64
	Block           float64
	Review          float64
}

// GetCorpus returns the corpus configuration
func (c *Config) GetCorpus() CorpusConfig {
	return CorpusConfig{
		Path:         c.GetString("corpus.path"),
		TestFraction: c.GetFloat64("corpus.test_fraction"),
		SplitSeed:    c.GetInt64("corpus.split_seed"),
	}
}

// GetNormalizer returns the normalization policy configuration
func (c *Config) GetNormalizer() NormalizerConfig {
	return NormalizerConfig{
		MinTokenLen:     c.GetInt("normalizer.min_token_len"),
		RemoveStopWords: c.GetBool("normalizer.remove_stop_words"),
	}
}

// GetModel returns the model configuration
func (c *Config) GetModel() ModelConfig {
	return ModelConfig{
		SmoothingAlpha: c.GetFloat64("model.smoothing_alpha"),
		ArtifactPath:   c.GetString("model.artifact_path"),
	}
}

// GetThresholds returns the threshold configuration
func (c *Config) GetThresholds() ThresholdConfig {
	return ThresholdConfig{
		SweepStep:       c.GetFloat64("thresholds.sweep_step"),
		TargetPrecision: c.GetFloat64("thresholds.target_precision"),
		Block:           c.GetFloat64("thresholds.block"),
		Review:          c.GetFloat64("thresholds.review"),
	}
}
