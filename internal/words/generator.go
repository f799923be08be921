// Package words produces level-tagged French vocabulary batches by
// repeatedly querying the generation endpoint and filtering its output
// through a strict single-token grammar.
package words

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rameshbaboov/french-vocabs/internal/llm"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

// Client is the narrow generation contract the loop depends on.
type Client interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

// Config parameterizes the batch loop. Zero durations/counts fall back
// to the defaults used by the CLI.
type Config struct {
	Level     string
	Model     string
	BatchSize int
	// Multiplier scales BatchSize into the per-call ask; the effective
	// ask is max(BatchSize*Multiplier, BatchSize+20).
	Multiplier float64
	OutDir     string

	CallTimeout      time.Duration
	MaxCallsPerBatch int
	BatchPause       time.Duration // pause after saving a batch
	RetryPause       time.Duration // pause after a failed call
	StalledPause     time.Duration // extra pause when a call added nothing
	EmptyBatchPause  time.Duration // backoff when a whole batch came up empty
}

func (c Config) withDefaults() Config {
	if c.Level == "" {
		c.Level = "A1"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 50
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 300 * time.Second
	}
	if c.MaxCallsPerBatch <= 0 {
		c.MaxCallsPerBatch = 200
	}
	if c.BatchPause <= 0 {
		c.BatchPause = 1500 * time.Millisecond
	}
	if c.RetryPause <= 0 {
		c.RetryPause = 2 * time.Second
	}
	if c.StalledPause <= 0 {
		c.StalledPause = 800 * time.Millisecond
	}
	if c.EmptyBatchPause <= 0 {
		c.EmptyBatchPause = 5 * time.Second
	}
	return c
}

// WantPerCall is how many words each request asks for. Asking for more
// than the batch size keeps the number of round trips down.
func (c Config) WantPerCall() int {
	want := int(float64(c.BatchSize) * c.Multiplier)
	if want < c.BatchSize+20 {
		want = c.BatchSize + 20
	}
	return want
}

// Generator runs the infinite batch loop. It is single-threaded and
// blocks on every model call; cancellation is observed at the loop
// boundaries only, so an interrupt never leaves a partial batch file.
type Generator struct {
	client   Client
	cfg      Config
	now      func() time.Time
	produced []string // cross-batch tail fed back into prompts
}

func NewGenerator(client Client, cfg Config) *Generator {
	return &Generator{
		client: client,
		cfg:    cfg.withDefaults(),
		now:    time.Now,
	}
}

// Run generates batches forever until ctx is canceled.
func (g *Generator) Run(ctx context.Context) error {
	log.Info("Infinite mode started | model=%s level=%s batch=%d ask/call=%d",
		g.cfg.Model, g.cfg.Level, g.cfg.BatchSize, g.cfg.WantPerCall())

	batchCounter := 0
	for {
		if ctx.Err() != nil {
			log.Info("Stopped. Goodbye!")
			return nil
		}
		batchCounter++

		started := g.now()
		batch := g.collectBatch(ctx)
		if ctx.Err() != nil {
			// Interrupted mid-collection: drop the partial batch.
			log.Info("Stopped. Goodbye!")
			return nil
		}

		if len(batch) > 0 {
			path, err := g.saveBatch(batch)
			if err != nil {
				log.Error("Failed to save batch #%d: %v", batchCounter, err)
			} else {
				log.Info("Saved %s | +%d words | elapsed=%.1fs | batch #%d",
					path, len(batch), g.now().Sub(started).Seconds(), batchCounter)
			}
		} else {
			log.Warn("Unable to collect any words for this batch; backing off %s", g.cfg.EmptyBatchPause)
			sleepCtx(ctx, g.cfg.EmptyBatchPause)
		}

		sleepCtx(ctx, g.cfg.BatchPause)
	}
}

// collectBatch issues model calls until the batch is full or the call
// cap is spent, returning whatever was collected.
func (g *Generator) collectBatch(ctx context.Context) []string {
	batch := make([]string, 0, g.cfg.BatchSize)

	// Dedupe is scoped to the current batch. Repeats across batch files
	// are discouraged only by the prompt blacklist, never filtered, so a
	// long run keeps filling batches instead of starving.
	seen := make(map[string]struct{}, g.cfg.BatchSize)

	calls := 0
	for len(batch) < g.cfg.BatchSize && calls < g.cfg.MaxCallsPerBatch {
		if ctx.Err() != nil {
			return batch
		}
		calls++

		system, prompt := BuildBatchPrompts(g.cfg.Level, g.cfg.WantPerCall(), g.produced)
		callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
		resp, err := g.client.Generate(callCtx, llm.Request{
			Model:  g.cfg.Model,
			Prompt: prompt,
			System: system,
			Options: llm.Options{
				Temperature:   0.7,
				TopP:          0.9,
				RepeatPenalty: 1.05,
				NumPredict:    512,
			},
		})
		cancel()
		if err != nil {
			log.Warn("Call #%d failed: %v; retrying in %s", calls, err, g.cfg.RetryPause)
			sleepCtx(ctx, g.cfg.RetryPause)
			continue
		}

		got := Extract(resp)
		added := 0
		for _, w := range got {
			key := DedupeKey(w)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			batch = append(batch, w)
			g.produced = append(g.produced, w)
			added++
			if len(batch) >= g.cfg.BatchSize {
				break
			}
		}

		log.Info("Call #%d: got=%d added=%d | batch=%d/%d", calls, len(got), added, len(batch), g.cfg.BatchSize)

		if added == 0 {
			// Nudge a stuck model instead of hammering it.
			sleepCtx(ctx, g.cfg.StalledPause)
		}
	}
	return batch
}

// saveBatch writes one immutable timestamped batch file and returns its path.
func (g *Generator) saveBatch(batch []string) (string, error) {
	if err := os.MkdirAll(g.cfg.OutDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("french_%s_%s.txt", g.cfg.Level, g.now().Format("20060102-150405"))
	path := filepath.Join(g.cfg.OutDir, name)
	if err := os.WriteFile(path, []byte(strings.Join(batch, "\n")+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
