package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"specask/internal/config"
)

// exit tokens accepted by the interactive loop, case-insensitive.
var exitTokens = map[string]bool{
	"выход": true,
	"exit":  true,
	"quit":  true,
}

// runChat starts the interactive question loop.
func runChat() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
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

	fmt.Printf("RAG-система загружена. Разделов: %d\n", engine.Store().Size())
	fmt.Println("Задайте вопрос по техническому заданию ('выход' для завершения).")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if exitTokens[strings.ToLower(query)] {
			fmt.Println("Выход из программы")
			break
		}

		resp, err := engine.Ask(context.Background(), query, cfg.TopK)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
			continue
		}

		printResponse(resp)
	}
	return scanner.Err()
}
