package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Levels are the CEFR levels the generators accept.
var Levels = []string{"A1", "A2", "B1", "B2"}

// Settings is the web-editable generator configuration, persisted as a
// small JSON file and passed to jobs as explicit arguments.
type Settings struct {
	WordsLevel     string `json:"words_level"`
	WordsModel     string `json:"words_model"`
	WordsBatchSize int    `json:"words_batch_size"`
	WordsOutDir    string `json:"words_outdir"`

	SentLevel     string `json:"sent_level"`
	SentModel     string `json:"sent_model"`
	SentInputDir  string `json:"sent_input_dir"`
	SentOutputDir string `json:"sent_output_dir"`

	LogDir string `json:"log_dir"`
}

// DefaultSettings returns the out-of-the-box generator configuration.
func DefaultSettings() Settings {
	return Settings{
		WordsLevel:     "A1",
		WordsModel:     "gemma2:2b",
		WordsBatchSize: 50,
		WordsOutDir:    "out_french",

		SentLevel:     "A1",
		SentModel:     "gemma2:2b",
		SentInputDir:  "out_french",
		SentOutputDir: "out_sentences",

		LogDir: "logs",
	}
}

func (s Settings) Validate() error {
	if !slices.Contains(Levels, s.WordsLevel) {
		return fmt.Errorf("words_level must be one of %s", strings.Join(Levels, ", "))
	}
	if !slices.Contains(Levels, s.SentLevel) {
		return fmt.Errorf("sent_level must be one of %s", strings.Join(Levels, ", "))
	}
	if strings.TrimSpace(s.WordsModel) == "" {
		return fmt.Errorf("words_model is required")
	}
	if strings.TrimSpace(s.SentModel) == "" {
		return fmt.Errorf("sent_model is required")
	}
	if s.WordsBatchSize <= 0 {
		return fmt.Errorf("words_batch_size must be positive")
	}
	if strings.TrimSpace(s.WordsOutDir) == "" {
		return fmt.Errorf("words_outdir is required")
	}
	if strings.TrimSpace(s.SentInputDir) == "" {
		return fmt.Errorf("sent_input_dir is required")
	}
	if strings.TrimSpace(s.SentOutputDir) == "" {
		return fmt.Errorf("sent_output_dir is required")
	}
	if strings.TrimSpace(s.LogDir) == "" {
		return fmt.Errorf("log_dir is required")
	}
	return nil
}

// LoadSettingsFile reads settings from path, merged over the defaults so
// older files missing newer fields still load. A missing file yields the
// defaults without error.
func LoadSettingsFile(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("invalid settings file: %w", err)
	}
	return settings, nil
}

// WriteSettingsFile validates and atomically persists settings to path.
func WriteSettingsFile(path string, settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	content, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// SettingsStore serializes reads and updates of the settings file.
type SettingsStore struct {
	path string

	mu      sync.RWMutex
	current Settings
}

func NewSettingsStore(path string, initial Settings) (*SettingsStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("settings file path is required")
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	return &SettingsStore{
		path:    path,
		current: initial,
	}, nil
}

func (s *SettingsStore) GetSettings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SettingsStore) UpdateSettings(next Settings) (Settings, error) {
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}
	if err := WriteSettingsFile(s.path, next); err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return next, nil
}
