package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/llm"
	"github.com/rameshbaboov/french-vocabs/internal/sentences"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

func newSentencesCommand() *cobra.Command {
	var (
		level     string
		model     string
		inputDir  string
		outputDir string
		poll      int
		timeout   int
	)

	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "Watch for word lists and build sentence documents",
		Long: `Watches the input directory for vocabulary text files and turns each
into DOCX documents with a meaning and example sentences per word.
Processed files are recorded in a ledger so they are handled once.
Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewFromEnv()
			log.InitLogger(log.ParseLevel(cfg.LogLevel))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			color.New(color.FgCyan, color.Bold).Printf("French sentence generator | model=%s watching=%s\n", model, inputDir)

			client := llm.NewClient(cfg.OllamaURL, time.Duration(timeout)*time.Second)
			gen := sentences.NewGenerator(client, sentences.Config{
				Model:       model,
				Level:       level,
				OutputDir:   outputDir,
				CallTimeout: time.Duration(timeout) * time.Second,
			})

			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return err
			}
			ledger, err := sentences.OpenFileLedger(filepath.Join(outputDir, "processed.txt"))
			if err != nil {
				return err
			}

			watcher := sentences.NewWatcher(gen, ledger, inputDir, time.Duration(poll)*time.Second)
			return watcher.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "CEFR level; empty infers it from each filename")
	cmd.Flags().StringVar(&model, "model", "mistral:latest", "model name on the generation endpoint")
	cmd.Flags().StringVar(&inputDir, "input-dir", "out_french", "directory watched for word lists")
	cmd.Flags().StringVar(&outputDir, "output-dir", "out_sentences", "output directory for documents")
	cmd.Flags().IntVar(&poll, "poll", 5, "directory scan interval in seconds")
	cmd.Flags().IntVar(&timeout, "timeout", 300, "per-call timeout in seconds")

	return cmd
}
