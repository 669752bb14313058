package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"specask/internal/config"
	"specask/pkg/encoder"
	"specask/pkg/loader"
	"specask/pkg/store"
)

var indexOut string

var indexCmd = &cobra.Command{
	Use:   "index <document.md>",
	Short: "Build the embedding snapshot from the specification document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		out := indexOut
		if out == "" {
			out = cfg.SnapshotPath
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		sections, err := loader.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Документ разбит на %d разделов\n", len(sections))

		enc, err := encoder.NewOpenAI(cfg.APIKey, cfg.EmbeddingBaseURL, cfg.EmbeddingModel)
		if err != nil {
			return err
		}

		vectors, err := enc.EncodeBatch(context.Background(), sections, func(done, total int) {
			fmt.Printf("\rВекторизация: %d/%d", done, total)
			if done == total {
				fmt.Println()
			}
		})
		if err != nil {
			return err
		}

		snap := &store.Snapshot{
			Texts:     sections,
			Vectors:   vectors,
			Model:     enc.Model(),
			Dimension: enc.Dimension(),
		}
		if err := store.Write(out, snap); err != nil {
			return err
		}

		logger.Info("snapshot written",
			zap.String("path", out),
			zap.Int("sections", len(sections)),
			zap.Int("dimension", enc.Dimension()))
		fmt.Printf("Снапшот сохранён: %s\n", out)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVarP(&indexOut, "out", "o", "", "output snapshot path (defaults to snapshot_path)")
}
