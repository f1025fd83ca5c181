package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/artifact"
	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/corpus"
	"github.com/mikey/sms-spam-classifier/internal/evaluate"
	"github.com/mikey/sms-spam-classifier/internal/factory"
	"github.com/mikey/sms-spam-classifier/internal/logging"
	"github.com/mikey/sms-spam-classifier/internal/pipeline"
)

var (
	// Corpus flags
	corpusPath   = flag.String("corpus", "", "Labeled corpus file (TSV label<tab>text or CSV v1,v2)")
	testFraction = flag.Float64("test-fraction", 0.2, "Fraction of the corpus held out for evaluation")
	splitSeed    = flag.Int64("seed", 42, "Seed for the stratified train/test split")

	// Model flags
	smoothingAlpha = flag.Float64("alpha", 1.0, "Laplace smoothing constant")
	artifactPath   = flag.String("artifact", "", "Output path for the model artifact")

	// Normalizer flags
	minTokenLen = flag.Int("min-token-len", 2, "Minimum token length kept by the normalizer")
	stopWords   = flag.Bool("stop-words", true, "Remove stop-words during normalization")

	// Threshold flags
	sweepStep       = flag.Float64("sweep-step", 0.01, "Threshold sweep grid step")
	targetPrecision = flag.Float64("target-precision", 0.99, "Precision target for the auto-block recommendation")

	// Misc flags
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
	errorLimit = flag.Int("error-samples", 5, "Misclassified examples to print per error type")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := loadConfig(logger)
	corpusCfg := cfg.GetCorpus()
	modelCfg := cfg.GetModel()
	thresholdCfg := cfg.GetThresholds()

	loader := corpus.NewLoader(logger)
	c, stats, err := loader.Load(corpusCfg.Path)
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err), zap.String("path", corpusCfg.Path))
	}

	normalizer := factory.NewNormalizerFactory(cfg).CreateNormalizer()
	trainer := pipeline.NewTrainer(normalizer, pipeline.TrainerParams{
		TestFraction:    corpusCfg.TestFraction,
		SplitSeed:       corpusCfg.SplitSeed,
		SmoothingAlpha:  modelCfg.SmoothingAlpha,
		SweepStep:       thresholdCfg.SweepStep,
		TargetPrecision: thresholdCfg.TargetPrecision,
	}, logger)

	startTime := time.Now()
	result, err := trainer.Run(c)
	if err != nil {
		logger.Fatal("Training failed", zap.Error(err))
	}

	store := artifact.NewFileStore(logger)
	if err := store.Save(result.Bundle, modelCfg.ArtifactPath); err != nil {
		logger.Fatal("Failed to save model artifact", zap.Error(err))
	}

	printReport(result, stats, time.Since(startTime), modelCfg.ArtifactPath)
}

// loadConfig builds configuration from the config file when given,
// otherwise from command line flags.
func loadConfig(logger *zap.Logger) *config.Config {
	if *configFile != "" {
		cfg, err := config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
		return cfg
	}

	v := config.NewEmptyViper()
	if *corpusPath != "" {
		v.Set("corpus.path", *corpusPath)
	}
	v.Set("corpus.test_fraction", *testFraction)
	v.Set("corpus.split_seed", *splitSeed)
	v.Set("normalizer.min_token_len", *minTokenLen)
	v.Set("normalizer.remove_stop_words", *stopWords)
	v.Set("model.smoothing_alpha", *smoothingAlpha)
	if *artifactPath != "" {
		v.Set("model.artifact_path", *artifactPath)
	}
	v.Set("thresholds.sweep_step", *sweepStep)
	v.Set("thresholds.target_precision", *targetPrecision)
	return config.NewFromViper(v)
}

func printReport(result *pipeline.TrainingResult, stats *corpus.LoadStats, duration time.Duration, artifactOut string) {
	fmt.Printf("\n=== Corpus ===\n")
	fmt.Printf("Raw rows: %d (skipped %d, duplicates removed %d)\n", stats.RawRows, stats.Skipped, stats.Duplicates)
	fmt.Printf("Kept: %d (train %d / test %d, seed %d)\n",
		stats.Kept, len(result.Split.Train), len(result.Split.Test), result.Split.Seed)
	for _, label := range []core.Label{core.Ham, core.Spam} {
		share := result.Quality.ClassBalance[label]
		fmt.Printf("  %-5s %5d (%.1f%%)\n", label, share.Count, share.Pct)
	}
	fmt.Printf("Message length: mean %.1f, median %.1f, max %d chars\n",
		result.Quality.Lengths.Mean, result.Quality.Lengths.Median, result.Quality.Lengths.Max)

	fmt.Printf("\n=== Evaluation (test split) ===\n")
	printMetrics(result.Comparison.Classifier)
	printMetrics(result.Comparison.Baseline)

	fmt.Printf("\n=== Threshold recommendations ===\n")
	fmt.Printf("Auto-block: P(spam) >= %.2f\n", result.Recommended.Block)
	fmt.Printf("Review:     P(spam) >= %.2f\n", result.Recommended.Review)

	printErrorSamples("False positives (ham flagged as spam)", result.Errors.FalsePositives)
	printErrorSamples("False negatives (spam missed)", result.Errors.FalseNegatives)

	fmt.Printf("\nArtifact: %s\n", artifactOut)
	fmt.Printf("Training time: %v\n", duration)
}

func printMetrics(m evaluate.Metrics) {
	fmt.Printf("%-12s accuracy %.4f  precision %.4f  recall %.4f  f1 %.4f\n",
		m.Predictor, m.Accuracy, m.Precision, m.Recall, m.F1)
	fmt.Printf("%-12s confusion: tp=%d fp=%d tn=%d fn=%d\n",
		"", m.Confusion.TruePositives, m.Confusion.FalsePositives,
		m.Confusion.TrueNegatives, m.Confusion.FalseNegatives)
}

func printErrorSamples(title string, messages core.Corpus) {
	if len(messages) == 0 {
		return
	}
	fmt.Printf("\n=== %s: %d ===\n", title, len(messages))
	limit := *errorLimit
	if limit > len(messages) {
		limit = len(messages)
	}
	for _, m := range messages[:limit] {
		text := m.Text
		if len(text) > 80 {
			text = text[:77] + "..."
		}
		fmt.Printf("  [%s] %s\n", m.Label, text)
	}
}
