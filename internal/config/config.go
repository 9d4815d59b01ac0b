// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - APP_ENV: Ambiente de execução (development/production, default: development)
//
// ## GitHub
//   - GITHUB_TOKEN: Token de acesso à API do GitHub (opcional, aumenta o rate limit)
//   - GITHUB_API_URL: Base da API (default: https://api.github.com)
//   - GITHUB_TIMEOUT_SECONDS: Timeout das chamadas HTTP (default: 15)
//   - RATE_LIMIT_THRESHOLD: Mínimo de requisições restantes antes de aguardar o reset (default: 10)
//
// ## Cache
//   - CACHE_TTL_MINUTES: TTL do cache em memória (default: 5)
//   - CACHE_MAX_SIZE: Capacidade do cache em memória (default: 500)
//
// ## Dados e jobs
//   - DATA_MAX_AGE_DAYS: Idade máxima do store persistente antes de refresh (default: 7)
//   - RETENTION_DAYS: Janela de retenção dos registros persistidos (default: 30)
//   - FETCH_INTERVAL_HOURS: Intervalo do job de fetch da matriz (default: 168, semanal)
//   - CLEANUP_INTERVAL_HOURS: Intervalo do job de limpeza (default: 24)
//   - FETCH_DELAY_MS: Pausa entre combinações da matriz de fetch (default: 2000)
//   - TRACKED_LANGUAGES: Linguagens acompanhadas pelo job, CSV (default: JavaScript,Python,TypeScript,Java,Go,Rust)
//   - TRACKED_TIME_RANGES: Janelas acompanhadas pelo job, CSV (default: 7d,30d)
//   - WARMUP_ON_START: Dispara um fetch manual assíncrono no boot (default: false)
//
// ## Typesense
//   - TYPESENSE_HOST: Host do servidor Typesense (default: localhost)
//   - TYPESENSE_PORT: Porta do servidor (default: 8108)
//   - TYPESENSE_API_KEY: Chave de API do Typesense
//   - TYPESENSE_PROTOCOL: Protocolo http/https (default: http)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita exportação OTLP (default: false)
//   - TRACING_ENDPOINT: Endpoint gRPC do collector (default: localhost:4317)
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	AppEnv     string

	// GitHub
	GitHubToken        string
	GitHubAPIURL       string
	GitHubTimeout      time.Duration
	RateLimitThreshold int

	// Cache em memória
	CacheTTL     time.Duration
	CacheMaxSize int

	// Freshness e retenção
	DataMaxAge time.Duration
	Retention  time.Duration

	// Jobs agendados
	FetchInterval     time.Duration
	CleanupInterval   time.Duration
	FetchDelay        time.Duration
	TrackedLanguages  []string
	TrackedTimeRanges []string
	WarmupOnStart     bool

	// Typesense
	TypesenseHost     string
	TypesensePort     string
	TypesenseAPIKey   string
	TypesenseProtocol string

	// Tracing
	TracingEnabled  bool
	TracingEndpoint string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		AppEnv:     getEnv("APP_ENV", "development"),

		GitHubToken:        getEnv("GITHUB_TOKEN", ""),
		GitHubAPIURL:       getEnv("GITHUB_API_URL", "https://api.github.com"),
		GitHubTimeout:      time.Duration(getEnvInt("GITHUB_TIMEOUT_SECONDS", 15)) * time.Second,
		RateLimitThreshold: getEnvInt("RATE_LIMIT_THRESHOLD", 10),

		CacheTTL:     time.Duration(getEnvInt("CACHE_TTL_MINUTES", 5)) * time.Minute,
		CacheMaxSize: getEnvInt("CACHE_MAX_SIZE", 500),

		DataMaxAge: time.Duration(getEnvInt("DATA_MAX_AGE_DAYS", 7)) * 24 * time.Hour,
		Retention:  time.Duration(getEnvInt("RETENTION_DAYS", 30)) * 24 * time.Hour,

		FetchInterval:   time.Duration(getEnvInt("FETCH_INTERVAL_HOURS", 168)) * time.Hour,
		CleanupInterval: time.Duration(getEnvInt("CLEANUP_INTERVAL_HOURS", 24)) * time.Hour,
		FetchDelay:      time.Duration(getEnvInt("FETCH_DELAY_MS", 2000)) * time.Millisecond,
		WarmupOnStart:   getEnv("WARMUP_ON_START", "false") == "true",

		TypesenseHost:     getEnv("TYPESENSE_HOST", "localhost"),
		TypesensePort:     getEnv("TYPESENSE_PORT", "8108"),
		TypesenseAPIKey:   getEnv("TYPESENSE_API_KEY", ""),
		TypesenseProtocol: getEnv("TYPESENSE_PROTOCOL", "http"),

		TracingEnabled:  getEnv("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),
	}

	cfg.TrackedLanguages = splitCSV(getEnv("TRACKED_LANGUAGES", "JavaScript,Python,TypeScript,Java,Go,Rust"))
	cfg.TrackedTimeRanges = splitCSV(getEnv("TRACKED_TIME_RANGES", "7d,30d"))

	return cfg
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
