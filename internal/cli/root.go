package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hearthline-ai/rampart/internal/config"
	"github.com/hearthline-ai/rampart/internal/engine"
	"github.com/hearthline-ai/rampart/internal/pipeline"
	"github.com/hearthline-ai/rampart/internal/rulepack"
	"github.com/hearthline-ai/rampart/internal/storage"
	"github.com/hearthline-ai/rampart/internal/userstate"
)

var rulesPath string

var rootCmd = &cobra.Command{
	Use:   "rampart",
	Short: "Rampart - guardrail engine for the real estate assistant",
	Long: `Rampart classifies text flowing between users and the assistant's
language model, deciding whether to allow, warn, block, or escalate each
message and tracking per-user violation history.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "Path to a YAML rule pack (default: built-in pack)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// buildLogger constructs a production zap logger at the given level.
func buildLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// buildPipeline wires a complete pipeline from env config plus the
// --rules flag, mirroring how the embedding application assembles it.
func buildPipeline() (*pipeline.Pipeline, *engine.Library, func(), error) {
	cfg := config.FromEnv()
	if rulesPath != "" {
		cfg.RulesPath = rulesPath
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	pack, err := rulepack.Load(cfg.RulesPath)
	if err != nil {
		return nil, nil, nil, err
	}
	lib, err := engine.Compile(pack)
	if err != nil {
		return nil, nil, nil, err
	}

	var writer storage.EventWriter
	if cfg.ClickHouseDSN != "" {
		chWriter, chErr := storage.NewClickHouseWriter(cfg.ClickHouseDSN, logger)
		if chErr != nil {
			logger.Warn("clickhouse connection failed, falling back to log writer", zap.Error(chErr))
			writer = storage.NewLogWriter(logger)
		} else {
			writer = chWriter
		}
	} else {
		writer = storage.NewLogWriter(logger)
	}

	p := pipeline.New(
		engine.NewInputClassifier(lib, cfg.MaxInputChars, logger),
		engine.NewOutputClassifier(lib, cfg.CertaintyLimit, logger),
		userstate.NewTracker(cfg.MaxWarnings, logger),
		writer,
		logger,
	)

	cleanup := func() {
		writer.Close()
		_ = logger.Sync()
	}
	return p, lib, cleanup, nil
}
