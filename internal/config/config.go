// Package config reads process configuration from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Defaults mirror the data directory layout used by the batch CLI.
const (
	DefaultInputDir    = "data/raw_audio"
	DefaultOutputPath  = "data/results.csv"
	DefaultConcurrency = 4
)

type Config struct {
	InputDir    string
	OutputPath  string
	Concurrency int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	LLMModel      string

	Transcriber      string // "whisper-server" or "openai"
	WhisperServerURL string
	WhisperModel     string
	Language         string

	TranscribeTimeout time.Duration
	ClassifyTimeout   time.Duration

	MockLLM        bool
	MockTranscribe bool
}

// FromEnv builds a Config and validates the startup-fatal conditions: a run
// that needs classification requires OPENAI_API_KEY, and a run routed to the
// local whisper server requires WHISPER_SERVER_URL.
func FromEnv() (Config, error) {
	cfg := Config{
		InputDir:          envOr("AUDIO_DIR", DefaultInputDir),
		OutputPath:        envOr("OUTPUT_FILE", DefaultOutputPath),
		Concurrency:       envInt("NUM_WORKERS", DefaultConcurrency),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		LLMModel:          envOr("LLM_MODEL", "gpt-3.5-turbo"),
		Transcriber:       envOr("TRANSCRIBER", "whisper-server"),
		WhisperServerURL:  os.Getenv("WHISPER_SERVER_URL"),
		WhisperModel:      envOr("WHISPER_MODEL", "small"),
		Language:          os.Getenv("WHISPER_LANGUAGE"),
		TranscribeTimeout: envDuration("TRANSCRIBE_TIMEOUT", 120*time.Second),
		ClassifyTimeout:   envDuration("CLASSIFY_TIMEOUT", 60*time.Second),
		MockLLM:           os.Getenv("USE_MOCK_LLM") == "true",
		MockTranscribe:    os.Getenv("USE_MOCK_TRANSCRIBE") == "true",
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if !cfg.MockLLM && cfg.OpenAIAPIKey == "" {
		return Config{}, errors.New("OPENAI_API_KEY not set in environment")
	}
	if !cfg.MockTranscribe && cfg.Transcriber == "whisper-server" && cfg.WhisperServerURL == "" {
		return Config{}, errors.New("WHISPER_SERVER_URL not set in environment")
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
