package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App   AppConfig   `toml:"app"`
	LLM   LLMConfig   `toml:"llm"`
	Index IndexConfig `toml:"index"`
	Tutor TutorConfig `toml:"tutor"`
}

type AppConfig struct {
	Name        string   `toml:"name"`
	Env         string   `toml:"env"`
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	GinMode     string   `toml:"gin_mode"`
	CORSOrigins []string `toml:"cors_origins"`
}

type LLMConfig struct {
	BaseURL               string `toml:"base_url"`
	APIKey                string `toml:"api_key"`
	Model                 string `toml:"model"`
	EmbeddingModel        string `toml:"embedding_model"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

type IndexConfig struct {
	PersistPath    string `toml:"persist_path"`
	UploadPath     string `toml:"upload_path"`
	ChunkSize      int    `toml:"chunk_size"`
	ChunkOverlap   int    `toml:"chunk_overlap"`
	TopK           int    `toml:"top_k"`
	EmbedBatchSize int    `toml:"embed_batch_size"`
}

type TutorConfig struct {
	// MinAnswerLength is the quality-gate floor in runes; shorter backend
	// output is replaced by the local templated answer.
	MinAnswerLength int `toml:"min_answer_length"`
	// MaxPromptChars bounds the composed prompt; context chunks are dropped
	// lowest-score-first to fit, the policy preamble is never cut.
	MaxPromptChars int `toml:"max_prompt_chars"`
	// ExtraDenylist extends the built-in out-of-scope term list.
	ExtraDenylist []string `toml:"extra_denylist"`
}

func Load() (*Config, error) {
	// A .env file is optional and only feeds the environment; real
	// environment variables always win over it.
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "pensaai",
			Env:         "dev",
			Host:        "0.0.0.0",
			Port:        8000,
			GinMode:     "debug",
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
		},
		LLM: LLMConfig{
			BaseURL:               "https://api.groq.com/openai/v1",
			APIKey:                "",
			Model:                 "llama3-8b-8192",
			EmbeddingModel:        "text-embedding-3-small",
			RequestTimeoutSeconds: 40,
		},
		Index: IndexConfig{
			PersistPath:    "data/index",
			UploadPath:     "data/uploads",
			ChunkSize:      256,
			ChunkOverlap:   25,
			TopK:           4,
			EmbedBatchSize: 10,
		},
		Tutor: TutorConfig{
			MinAnswerLength: 200,
			MaxPromptChars:  12000,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.CORSOrigins = getEnvAsList("CORS_ORIGINS", cfg.App.CORSOrigins)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	// GROQ_API_KEY is the name the original deployment ships in .env files.
	cfg.LLM.APIKey = getEnv("GROQ_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.EmbeddingModel = getEnv("LLM_EMBEDDING_MODEL", cfg.LLM.EmbeddingModel)
	cfg.LLM.RequestTimeoutSeconds = getEnvAsInt("LLM_REQUEST_TIMEOUT_SECONDS", cfg.LLM.RequestTimeoutSeconds)

	cfg.Index.PersistPath = getEnv("INDEX_PERSIST_PATH", cfg.Index.PersistPath)
	cfg.Index.UploadPath = getEnv("INDEX_UPLOAD_PATH", cfg.Index.UploadPath)
	cfg.Index.ChunkSize = getEnvAsInt("INDEX_CHUNK_SIZE", cfg.Index.ChunkSize)
	cfg.Index.ChunkOverlap = getEnvAsInt("INDEX_CHUNK_OVERLAP", cfg.Index.ChunkOverlap)
	cfg.Index.TopK = getEnvAsInt("INDEX_TOP_K", cfg.Index.TopK)
	cfg.Index.EmbedBatchSize = getEnvAsInt("INDEX_EMBED_BATCH_SIZE", cfg.Index.EmbedBatchSize)

	cfg.Tutor.MinAnswerLength = getEnvAsInt("TUTOR_MIN_ANSWER_LENGTH", cfg.Tutor.MinAnswerLength)
	cfg.Tutor.MaxPromptChars = getEnvAsInt("TUTOR_MAX_PROMPT_CHARS", cfg.Tutor.MaxPromptChars)
	cfg.Tutor.ExtraDenylist = getEnvAsList("TUTOR_EXTRA_DENYLIST", cfg.Tutor.ExtraDenylist)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
