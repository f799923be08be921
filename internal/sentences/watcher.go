package sentences

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

// Watcher reconciles the input directory against the ledger on a fixed
// schedule: list candidate word lists, subtract the processed set,
// run the generator over the remainder.
type Watcher struct {
	gen      *Generator
	ledger   Ledger
	inputDir string
	poll     time.Duration

	group singleflight.Group
}

func NewWatcher(gen *Generator, ledger Ledger, inputDir string, poll time.Duration) *Watcher {
	if poll <= 0 {
		poll = 5 * time.Second
	}
	return &Watcher{
		gen:      gen,
		ledger:   ledger,
		inputDir: inputDir,
		poll:     poll,
	}
}

// Run watches the input directory until ctx is canceled. Scans are
// scheduled through cron and collapsed through singleflight so a slow
// pass never overlaps the next tick.
func (w *Watcher) Run(ctx context.Context) error {
	log.Info("Watching %s/*.txt for new wordlists (every %s)", w.inputDir, w.poll)

	scanFunc := func() {
		_, _, _ = w.group.Do("scan", func() (any, error) {
			w.Scan(ctx)
			return nil, nil
		})
	}

	// First pass immediately so a restart picks up backlog without
	// waiting a full tick.
	scanFunc()

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.poll), scanFunc); err != nil {
		return fmt.Errorf("schedule scan: %w", err)
	}
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info("Stopped")
	return nil
}

// Scan processes every unprocessed word list currently in the input
// directory, oldest name first.
func (w *Watcher) Scan(ctx context.Context) {
	scansTotal.Inc()

	files, err := filepath.Glob(filepath.Join(w.inputDir, "*.txt"))
	if err != nil {
		log.Error("Failed to list %s: %v", w.inputDir, err)
		return
	}
	sort.Strings(files)

	for _, f := range files {
		if ctx.Err() != nil {
			return
		}

		abs, err := filepath.Abs(f)
		if err != nil {
			log.Error("Failed to resolve %s: %v", f, err)
			continue
		}
		if w.ledger.Contains(abs) {
			continue
		}

		log.Info("Found new file %s", abs)
		if err := w.gen.ProcessFile(ctx, abs); err != nil {
			log.Error("Failed to process %s: %v", abs, err)
			continue
		}
		filesProcessed.Inc()
		if err := w.ledger.Add(abs); err != nil {
			log.Error("Failed to record %s in ledger: %v", abs, err)
		}
	}
}
