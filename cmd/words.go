package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/llm"
	"github.com/rameshbaboov/french-vocabs/internal/words"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

func newWordsCommand() *cobra.Command {
	var (
		level      string
		model      string
		batchSize  int
		outDir     string
		timeout    int
		multiplier float64
		batchPause float64
		maxCalls   int
	)

	cmd := &cobra.Command{
		Use:   "words",
		Short: "Generate vocabulary batches",
		Long: `Generates French vocabulary forever: each batch asks the model for
level-graded words, filters them through a strict grammar, dedupes
within the batch while blacklisting recent words in the prompt, and
saves the batch as a timestamped text file. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.NewFromEnv()
			log.InitLogger(log.ParseLevel(cfg.LogLevel))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			color.New(color.FgCyan, color.Bold).Printf("French vocabulary generator | level=%s model=%s\n", level, model)

			client := llm.NewClient(cfg.OllamaURL, time.Duration(timeout)*time.Second)
			gen := words.NewGenerator(client, words.Config{
				Level:            level,
				Model:            model,
				BatchSize:        batchSize,
				Multiplier:       multiplier,
				OutDir:           outDir,
				CallTimeout:      time.Duration(timeout) * time.Second,
				MaxCallsPerBatch: maxCalls,
				BatchPause:       time.Duration(batchPause * float64(time.Second)),
			})
			return gen.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&level, "level", "A1", "CEFR level (A1, A2, B1, B2)")
	cmd.Flags().StringVar(&model, "model", "llama3.1:8b", "model name on the generation endpoint")
	cmd.Flags().IntVar(&batchSize, "batch-size", 50, "words saved per output file")
	cmd.Flags().StringVar(&outDir, "outdir", "out_french", "output directory for word lists")
	cmd.Flags().IntVar(&timeout, "timeout", 300, "per-call timeout in seconds")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 2.0, "per-call ask as a multiple of batch size")
	cmd.Flags().Float64Var(&batchPause, "sleep-between-batches", 1.5, "pause in seconds after saving a batch")
	cmd.Flags().IntVar(&maxCalls, "max-calls-per-batch", 200, "model call cap per batch")

	return cmd
}
