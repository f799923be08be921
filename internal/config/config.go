// Package config holds the process configuration.
//
// Two layers: Config is read once from the environment at startup and
// covers the web server and the model endpoint; Settings is the
// web-editable JSON file that parameterizes generator jobs.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the environment-driven configuration.
//
// Environment Variables:
// - HTTP_ADDR: listen address for the web UI (default: :8080)
// - DATA_DIR: base directory that relative output/log dirs resolve against (default: .)
// - SETTINGS_FILE: path of the web-editable settings file (default: web_config.json)
// - HISTORY_DB: path of the job history database (default: data/jobs.db)
// - OLLAMA_URL: base URL of the generation endpoint (default: http://127.0.0.1:11434)
// - LLM_TIMEOUT: per-call timeout in seconds (default: 300)
// - UI_DIR: static UI directory (optional)
// - UI_ENABLED: serve the static UI (default: false)
// - LOG_LEVEL: debug|info|warn|error (default: info)
type Config struct {
	HTTPAddr     string `json:"http_addr"`
	DataDir      string `json:"data_dir"`
	SettingsFile string `json:"settings_file"`
	HistoryDB    string `json:"history_db"`

	OllamaURL  string        `json:"ollama_url"`
	LLMTimeout time.Duration `json:"llm_timeout"`

	UIStaticDir string `json:"ui_static_dir"`
	UIEnabled   bool   `json:"ui_enabled"`

	LogLevel string `json:"log_level"`
}

// NewFromEnv creates a Config from environment variables.
func NewFromEnv() *Config {
	return &Config{
		HTTPAddr:     getEnvString("HTTP_ADDR", ":8080"),
		DataDir:      getEnvString("DATA_DIR", "."),
		SettingsFile: getEnvString("SETTINGS_FILE", "web_config.json"),
		HistoryDB:    getEnvString("HISTORY_DB", "data/jobs.db"),
		OllamaURL:    getEnvString("OLLAMA_URL", "http://127.0.0.1:11434"),
		LLMTimeout:   time.Duration(getEnvInt("LLM_TIMEOUT", 300)) * time.Second,
		UIStaticDir:  getEnvString("UI_DIR", ""),
		UIEnabled:    getEnvBool("UI_ENABLED", false),
		LogLevel:     getEnvString("LOG_LEVEL", "info"),
	}
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
