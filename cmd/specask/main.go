package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"specask/internal/config"
	"specask/pkg/answer"
	"specask/pkg/encoder"
	"specask/pkg/specask"
	"specask/pkg/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "specask",
	Short: "Question answering over the coffee-shop bot specification",
	Long: `specask answers natural-language questions about the technical
specification by retrieving the most similar sections from a precomputed
embedding snapshot and composing a grounded answer.

Run without arguments for an interactive session, or use 'ask' for a
one-shot query.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(indexCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// buildEngine loads the snapshot and wires the query pipeline from config.
func buildEngine(cfg *config.Config, logger *zap.Logger) (*specask.Engine, error) {
	s, err := store.Load(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	logger.Info("snapshot loaded",
		zap.String("path", cfg.SnapshotPath),
		zap.Int("sections", s.Size()),
		zap.Int("dimension", s.Dimension()),
		zap.String("model", s.Model()))

	enc, err := encoder.NewOpenAI(cfg.APIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel)
	if err != nil {
		return nil, err
	}

	var gen answer.Generator
	mode := answer.ModeLocal
	if cfg.UseAPI {
		gen, err = answer.NewOpenAIGenerator(cfg.APIKey, cfg.ChatBaseURL, cfg.ChatModel, cfg.RequestTimeout)
		if err != nil {
			return nil, err
		}
		mode = answer.ModeExternal
	}
	composer := answer.NewComposer(gen, mode, logger)

	return specask.NewEngine(s, enc, composer, logger)
}
