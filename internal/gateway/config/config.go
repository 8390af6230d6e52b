package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string
	LLM         LLMConfig
	Dataset     DatasetConfig
	Cache       CacheConfig
}

type LLMConfig struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float32
	MaxTokens    int
	Timeout      time.Duration
	HistoryTurns int
	RPS          float64
}

// DatasetConfig points at the S3-compatible bucket holding dataset snapshots.
type DatasetConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CacheConfig struct {
	TTL  time.Duration
	Size int
}

// CanUseS3 reports whether every field an S3 client needs is present.
func (c DatasetConfig) CanUseS3() bool {
	return c.Enabled &&
		strings.TrimSpace(c.Endpoint) != "" &&
		strings.TrimSpace(c.AccessKey) != "" &&
		strings.TrimSpace(c.SecretKey) != "" &&
		strings.TrimSpace(c.Bucket) != ""
}

// IsLocal reports whether the gateway runs in the local development profile.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "local")
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8081", "server port")
	flag.Parse()

	return FromEnv(*port), nil
}

// FromEnv builds a Config from environment variables; defaultPort applies when
// PORT is unset.
func FromEnv(defaultPort string) *Config {
	port := defaultPort
	if envPort := strings.TrimSpace(os.Getenv("PORT")); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			port = envPort
		} else {
			port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:        port,
		Env:         env,
		LogLevel:    firstNonEmpty(strings.TrimSpace(os.Getenv("LOG_LEVEL")), "info"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LLM:         loadLLMConfig(),
		Dataset:     loadDatasetConfig(env),
		Cache: CacheConfig{
			TTL:  envDuration("SESSION_CACHE_TTL", 5*time.Minute),
			Size: envInt("SESSION_CACHE_SIZE", 1024),
		},
	}
}

func loadLLMConfig() LLMConfig {
	provider := strings.ToLower(firstNonEmpty(strings.TrimSpace(os.Getenv("LLM_PROVIDER")), "deepseek"))
	var key string
	switch provider {
	case "groq":
		key = os.Getenv("GROQ_API_KEY")
	case "gemini":
		key = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
	default:
		key = os.Getenv("DEEPSEEK_API_KEY")
	}
	return LLMConfig{
		Provider:     provider,
		APIKey:       strings.TrimSpace(key),
		Model:        strings.TrimSpace(os.Getenv("LLM_MODEL")),
		BaseURL:      strings.TrimSpace(os.Getenv("LLM_BASE_URL")),
		Temperature:  float32(envFloat("LLM_TEMPERATURE", 0.1)),
		MaxTokens:    envInt("LLM_MAX_TOKENS", 600),
		Timeout:      envDuration("LLM_TIMEOUT", 60*time.Second),
		HistoryTurns: envInt("LLM_HISTORY_TURNS", 6),
		RPS:          envFloat("LLM_RPS", 0),
	}
}

func loadDatasetConfig(env string) DatasetConfig {
	local := strings.EqualFold(strings.TrimSpace(env), "local")
	endpoint := strings.TrimSpace(os.Getenv("ARTIFACT_S3_ENDPOINT"))
	if local {
		endpoint = firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_MINIO_ENDPOINT")), "minio:9000")
	}
	return DatasetConfig{
		Enabled:   local || endpoint != "",
		Endpoint:  endpoint,
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("ARTIFACT_S3_BUCKET")), "vibechart-datasets"),
		UseSSL:    !local && envBool("ARTIFACT_S3_USE_SSL", true),
	}
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return def
	}
	return v
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func envDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
