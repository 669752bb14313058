package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"specask/internal/config"
	"specask/pkg/specask"
)

var askTop int

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if askTop > 0 {
			cfg.TopK = askTop
		}

		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		engine, err := buildEngine(cfg, logger)
		if err != nil {
			return err
		}

		resp, err := engine.Ask(context.Background(), strings.Join(args, " "), cfg.TopK)
		if err != nil {
			return err
		}

		printResponse(resp)
		return nil
	},
}

func init() {
	askCmd.Flags().IntVar(&askTop, "top", 0, "number of sections to retrieve (overrides config)")
}

// printResponse shows the ranked sections and the composed answer.
func printResponse(resp *specask.Response) {
	fmt.Printf("\nНайдено %d релевантных разделов:\n", len(resp.Results))
	for i, r := range resp.Results {
		fmt.Printf("%d. [%d] %s (сходство: %.3f)\n", i+1, r.Chunk.Index, r.Chunk.Title(), r.Score)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println(resp.Answer)
	fmt.Println(strings.Repeat("=", 60))
}
