package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rameshbaboov/french-vocabs/internal/llm"
)

type scriptedStep struct {
	text string
	err  error
}

// scriptedClient replays a fixed sequence of responses and records every
// request it served. Once the script runs out, it keeps returning the
// last step.
type scriptedClient struct {
	mu    sync.Mutex
	steps []scriptedStep
	reqs  []llm.Request
}

func (c *scriptedClient) Generate(_ context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reqs = append(c.reqs, req)

	idx := len(c.reqs) - 1
	if idx >= len(c.steps) {
		idx = len(c.steps) - 1
	}
	step := c.steps[idx]
	return step.text, step.err
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.reqs)
}

func (c *scriptedClient) request(i int) llm.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reqs[i]
}

func fastConfig(batchSize int) Config {
	return Config{
		Level:            "A1",
		Model:            "test-model",
		BatchSize:        batchSize,
		CallTimeout:      time.Second,
		MaxCallsPerBatch: 10,
		BatchPause:       time.Millisecond,
		RetryPause:       time.Millisecond,
		StalledPause:     time.Millisecond,
		EmptyBatchPause:  time.Millisecond,
	}
}

func TestCollectBatch_StopsAtTargetSize(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{text: "chat\nchien\nmaison"},
		{text: "chat\nsoleil\nlune\nmer"}, // one overlap with the first call
		{text: "jamais\nappelé"},
	}}
	gen := NewGenerator(client, fastConfig(5))

	batch := gen.collectBatch(context.Background())

	assert.Equal(t, []string{"chat", "chien", "maison", "soleil", "lune"}, batch)
	// The loop must stop issuing calls the moment the batch is full,
	// even though the second call returned more.
	assert.Equal(t, 2, client.callCount())
}

func TestCollectBatch_NeverDuplicatesWithinBatch(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{text: "chat\nCHAT\nChat\nchien"},
		{text: "chien\nmaison"},
	}}
	gen := NewGenerator(client, fastConfig(3))

	batch := gen.collectBatch(context.Background())

	assert.Equal(t, []string{"chat", "chien", "maison"}, batch)
}

func TestCollectBatch_RetriesFailedCallsAgainstTheCap(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{err: errors.New("connection refused")},
		{text: "chat"},
	}}
	gen := NewGenerator(client, fastConfig(1))

	batch := gen.collectBatch(context.Background())

	assert.Equal(t, []string{"chat"}, batch)
	assert.Equal(t, 2, client.callCount())
}

func TestCollectBatch_CapExhaustionStopsCalling(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{err: errors.New("down")},
	}}
	cfg := fastConfig(5)
	cfg.MaxCallsPerBatch = 3
	gen := NewGenerator(client, cfg)

	batch := gen.collectBatch(context.Background())

	assert.Empty(t, batch)
	assert.Equal(t, 3, client.callCount())
}

func TestCollectBatch_PromptCarriesProducedTail(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{text: "chat"},
		{text: "chien"},
	}}
	gen := NewGenerator(client, fastConfig(1))

	first := gen.collectBatch(context.Background())
	require.Equal(t, []string{"chat"}, first)

	second := gen.collectBatch(context.Background())
	require.Equal(t, []string{"chien"}, second)

	// The second batch's prompt must blacklist the already produced word.
	assert.Contains(t, client.request(1).Prompt, "chat")
	assert.NotContains(t, client.request(0).Prompt, "chat")
}

func TestCollectBatch_EarlierBatchWordsMayReappear(t *testing.T) {
	client := &scriptedClient{steps: []scriptedStep{
		{text: "chat\nchien"},
		{text: "chat\nchien\nmaison"}, // model ignored the blacklist
	}}
	gen := NewGenerator(client, fastConfig(2))

	first := gen.collectBatch(context.Background())
	require.Equal(t, []string{"chat", "chien"}, first)

	// Dedupe is per batch: the blacklist is advisory, so a repeat offer
	// still fills the second batch rather than starving it.
	second := gen.collectBatch(context.Background())
	assert.Equal(t, []string{"chat", "chien"}, second)
}

func TestWantPerCall_FloorsAtBatchSizePlusTwenty(t *testing.T) {
	cfg := Config{BatchSize: 50, Multiplier: 2.0}
	assert.Equal(t, 100, cfg.WantPerCall())

	cfg = Config{BatchSize: 10, Multiplier: 1.5}
	assert.Equal(t, 30, cfg.WantPerCall())
}

func TestRun_SavesTimestampedBatchesUntilCanceled(t *testing.T) {
	outDir := t.TempDir()
	client := &scriptedClient{steps: []scriptedStep{
		{text: "chat\nchien\nmaison"},
	}}
	cfg := fastConfig(3)
	cfg.OutDir = outDir
	gen := NewGenerator(client, cfg)

	// Advance one second per clock read so batch files never collide.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var ticks int
	gen.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gen.Run(ctx) }()

	require.Eventually(t, func() bool {
		entries, err := os.ReadDir(outDir)
		return err == nil && len(entries) > 0
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Regexp(t, `^french_A1_\d{8}-\d{6}\.txt$`, entries[0].Name())

	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "chat\nchien\nmaison\n", string(data))
}
