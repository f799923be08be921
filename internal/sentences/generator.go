// Package sentences turns word-list files into bilingual example
// sentence documents via a two-step model dialogue per word: a meaning
// lookup, then a numbered sentence/translation listing.
package sentences

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abadojack/whatlanggo"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/llm"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
	"github.com/rameshbaboov/french-vocabs/pkg/retry"
)

// Client is the narrow generation contract the generator depends on.
type Client interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

const noSentencesPlaceholder = "No sentences generated."

// Config parameterizes document generation.
type Config struct {
	Model string
	// Level overrides filename detection when set.
	Level     string
	OutputDir string
	// WordsPerDoc is the sub-batch size per output document.
	WordsPerDoc int

	CallTimeout time.Duration
	Retry       retry.Policy
}

func (c Config) withDefaults() Config {
	if c.WordsPerDoc <= 0 {
		c.WordsPerDoc = 10
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 300 * time.Second
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry = retry.Policy{MaxAttempts: 3, Delay: 2 * time.Second}
	}
	return c
}

type Generator struct {
	client Client
	cfg    Config
}

func NewGenerator(client Client, cfg Config) *Generator {
	return &Generator{
		client: client,
		cfg:    cfg.withDefaults(),
	}
}

// DetectLevel infers a CEFR level from a word-list filename, e.g.
// french_B1_20260301-120000.txt. Empty when nothing matches.
func DetectLevel(path string) string {
	name := strings.ToUpper(filepath.Base(path))
	for _, lvl := range config.Levels {
		if strings.Contains(name, "_"+lvl+"_") || strings.HasPrefix(name, "FRENCH_"+lvl+"_") {
			return lvl
		}
	}
	return ""
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// ProcessFile turns one word-list file into one DOCX per sub-batch of
// words. A file with no words is trivially successful and produces no
// output. A non-nil error means the file must not be marked processed.
func (g *Generator) ProcessFile(ctx context.Context, inFile string) error {
	words, err := readWords(inFile)
	if err != nil {
		return fmt.Errorf("read words: %w", err)
	}
	if len(words) == 0 {
		log.Warn("%s: no words", inFile)
		return nil
	}

	level := g.cfg.Level
	if level == "" {
		level = DetectLevel(inFile)
	}
	if level == "" {
		level = "A1"
	}

	base := strings.TrimSuffix(filepath.Base(inFile), filepath.Ext(inFile))
	outDir := filepath.Join(g.cfg.OutputDir, base)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	log.Info("%s: %d words -> groups of %d | level=%s", inFile, len(words), g.cfg.WordsPerDoc, level)

	part := 0
	for start := 0; start < len(words); start += g.cfg.WordsPerDoc {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + g.cfg.WordsPerDoc
		if end > len(words) {
			end = len(words)
		}
		part++

		content := g.buildBatchContent(ctx, words[start:end], level)
		outPath := filepath.Join(outDir, fmt.Sprintf("%s_part%03d.docx", base, part))
		if err := WriteDocx(outPath, content); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		g.checkLanguage(outPath, content)
		log.Info("Saved %s", outPath)
	}

	log.Info("Done %s", inFile)
	return nil
}

// buildBatchContent assembles the document lines for one sub-batch of
// words: per word a meaning header, the non-blank sentence lines, and
// separating blanks. Each model step retries independently and degrades
// to a placeholder rather than failing the word.
func (g *Generator) buildBatchContent(ctx context.Context, batch []string, level string) []string {
	content := make([]string, 0, len(batch)*14)

	for _, word := range batch {
		log.Info("Getting meaning for %q...", word)
		meaningFallback := fmt.Sprintf("Word: %s | Meaning: ???", word)
		meaning, err := retry.DoWithFallback(ctx, g.cfg.Retry, meaningFallback, func(ctx context.Context) (string, error) {
			system, prompt := BuildMeaningPrompts(word)
			return g.generateStep(ctx, system, prompt)
		})
		if err != nil {
			log.Warn("Meaning failed for %q after %d attempts: %v", word, g.cfg.Retry.MaxAttempts, err)
		}

		log.Info("Getting sentences for %q...", word)
		sentencesText, err := retry.DoWithFallback(ctx, g.cfg.Retry, noSentencesPlaceholder, func(ctx context.Context) (string, error) {
			system, prompt := BuildSentencesPrompts(word, level)
			return g.generateStep(ctx, system, prompt)
		})
		if err != nil {
			log.Warn("Sentences failed for %q after %d attempts: %v", word, g.cfg.Retry.MaxAttempts, err)
		}

		content = append(content, strings.TrimSpace(meaning), "")
		for _, line := range strings.Split(sentencesText, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			content = append(content, line)
		}
		content = append(content, "")
	}
	return content
}

func (g *Generator) generateStep(ctx context.Context, system, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.cfg.CallTimeout)
	defer cancel()

	resp, err := g.client.Generate(callCtx, llm.Request{
		Model:   g.cfg.Model,
		Prompt:  prompt,
		System:  system,
		Options: llm.DefaultOptions(),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// checkLanguage samples the numbered sentence lines of an assembled
// document and warns when most of them do not detect as French. Purely
// diagnostic: the document is kept either way.
func (g *Generator) checkLanguage(outPath string, content []string) {
	var sampled, french int
	for _, line := range content {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || !isNumberedLine(trimmed) {
			continue
		}
		sampled++
		if whatlanggo.DetectLang(stripNumberPrefix(trimmed)) == whatlanggo.Fra {
			french++
		}
	}
	linesSampled.Add(float64(sampled))
	linesDetectedFrench.Add(float64(french))
	if sampled > 0 && french*2 < sampled {
		log.Warn("%s: only %d/%d numbered lines detect as French; the model may have mixed up languages", outPath, french, sampled)
	}
}

func isNumberedLine(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	return strings.Contains(s, ".")
}

func stripNumberPrefix(s string) string {
	if idx := strings.Index(s, "."); idx >= 0 && idx < 3 {
		return strings.TrimSpace(s[idx+1:])
	}
	return s
}
