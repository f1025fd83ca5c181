package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/config"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/di"
	"github.com/mikey/sms-spam-classifier/internal/logging"
)

var (
	artifactPath = flag.String("artifact", "", "Path to the model artifact")
	inputFile    = flag.String("file", "", "Input file with one raw message per line (use stdin if not specified)")
	workers      = flag.Int("workers", 4, "Concurrent scoring workers")

	// Threshold flags
	blockThreshold  = flag.Float64("block-threshold", 0.95, "P(spam) at or above which messages are blocked")
	reviewThreshold = flag.Float64("review-threshold", 0.5, "P(spam) at or above which messages are flagged for review")

	// Cache flags
	cacheType    = flag.String("cache", "memory", "Score cache backend (memory, sqlite, mysql)")
	cacheEnabled = flag.Bool("cache-enabled", true, "Enable the score cache")

	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
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

	container, err := di.BuildScorerContainer(cfg)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run scores the batch with all dependencies injected.
func run(logger *zap.Logger, service *core.ScoringService, cache core.ScoreCache) error {
	defer logger.Sync()

	texts, err := readMessages(logger)
	if err != nil {
		return err
	}
	logger.Info("Scoring batch", zap.Int("messages", len(texts)), zap.Int("workers", *workers))

	results := service.ScoreBatch(context.Background(), texts, *workers)

	scored, skipped := 0, 0
	for i, r := range results {
		if r == nil {
			skipped++
			fmt.Printf("%d\tskipped\t-\t-\n", i+1)
			continue
		}
		scored++
		fmt.Printf("%d\t%s\t%.4f\t%s\n", i+1, r.Prediction.Class, r.Prediction.SpamProbability, r.Decision)
	}
	logger.Info("Batch complete", zap.Int("scored", scored), zap.Int("skipped", skipped))

	// Stop the cache if needed
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	return nil
}

// readMessages reads one raw message per line from the input file or
// stdin.
func readMessages(logger *zap.Logger) ([]string, error) {
	var reader io.Reader
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()
		reader = f
		logger.Info("Reading messages from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading messages from stdin")
	}

	var texts []string
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	return texts, nil
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
	if *artifactPath != "" {
		v.Set("model.artifact_path", *artifactPath)
	}
	v.Set("thresholds.block", *blockThreshold)
	v.Set("thresholds.review", *reviewThreshold)
	v.Set("cache.type", *cacheType)
	v.Set("cache.enabled", *cacheEnabled)
	return config.NewFromViper(v)
}
