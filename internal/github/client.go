package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/prefeitura-rio/app-tech-radar/internal/cache"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Fetcher é o contrato consumido pelos serviços de radar e pelo scheduler.
type Fetcher interface {
	FetchTrending(ctx context.Context, language, timeRange string) ([]models.Repository, error)
	RateLimitStatus() *models.RateLimitInfo
}

// Options configura o cliente do GitHub.
type Options struct {
	BaseURL            string
	Token              string
	Timeout            time.Duration
	CacheTTL           time.Duration
	RateLimitThreshold int
}

// Client busca repositórios em alta na API de busca do GitHub.
//
// Fluxo de leitura: cache fresco -> chamada live (coalescida por chave via
// singleflight) -> fallback para entrada vencida do cache quando o upstream
// falha. O estado de rate limit é atualizado a partir dos headers de toda
// resposta e consultado antes de cada chamada live.
type Client struct {
	baseURL   string
	token     string
	http      *http.Client
	cache     cache.Cache
	ttl       time.Duration
	threshold int

	mu        sync.Mutex
	rateLimit *models.RateLimitInfo

	group singleflight.Group
}

// NewClient cria um Client usando retryablehttp com timeout e retries curtos.
func NewClient(opts Options, c cache.Cache) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.github.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.RateLimitThreshold <= 0 {
		opts.RateLimitThreshold = 10
	}

	r := retryablehttp.NewClient()
	r.RetryMax = 2
	r.HTTPClient.Timeout = opts.Timeout
	r.Logger = nil

	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		token:     opts.Token,
		http:      r.StandardClient(),
		cache:     c,
		ttl:       opts.CacheTTL,
		threshold: opts.RateLimitThreshold,
	}
}

// CacheKey deriva a chave de cache de (linguagem, time range).
// Determinística e sem colisão entre pares distintos.
func CacheKey(language, timeRange string) string {
	if language == "" {
		language = "all"
	}
	return fmt.Sprintf("trending:%s:%s", language, models.NormalizeTimeRange(timeRange))
}

// FetchTrending retorna os repositórios em alta para (language, timeRange).
//
// Chamadas concorrentes para a mesma chave compartilham uma única requisição
// ao GitHub. Falha somente quando a chamada live falha E não existe nenhum
// valor em cache para a chave.
func (c *Client) FetchTrending(ctx context.Context, language, timeRange string) ([]models.Repository, error) {
	key := CacheKey(language, timeRange)

	if v, ok := c.cache.Get(key); ok {
		logger.Log.Debug("cache hit", zap.String("key", key))
		return v.([]models.Repository), nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		// outro goroutine pode ter populado o cache enquanto aguardávamos
		if v, ok := c.cache.Get(key); ok {
			return v, nil
		}
		return c.fetchLive(ctx, key, language, timeRange)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Log.Debug("requisição coalescida", zap.String("key", key))
	}
	return v.([]models.Repository), nil
}

// fetchLive executa a chamada real ao GitHub, com espera de rate limit e
// fallback para cache vencido em qualquer falha.
func (c *Client) fetchLive(ctx context.Context, key, language, timeRange string) ([]models.Repository, error) {
	if err := c.waitForRateLimit(ctx); err != nil {
		if stale, ok := c.staleFallback(key); ok {
			return stale, nil
		}
		return nil, err
	}

	repos, err := c.search(ctx, language, timeRange)
	if err != nil {
		logger.Log.Error("falha ao buscar repositórios no GitHub",
			zap.String("key", key), zap.Error(err))
		if stale, ok := c.staleFallback(key); ok {
			return stale, nil
		}
		return nil, err
	}

	c.cache.Set(key, repos, c.ttl)
	logger.Log.Info("repositórios em alta atualizados",
		zap.String("key", key), zap.Int("count", len(repos)))
	return repos, nil
}

// searchResponse é o payload de GET /search/repositories.
// Items é ponteiro para distinguir "lista vazia" de "campo ausente".
type searchResponse struct {
	TotalCount int                  `json:"total_count"`
	Items      *[]models.Repository `json:"items"`
}

func (c *Client) search(ctx context.Context, language, timeRange string) ([]models.Repository, error) {
	params := url.Values{}
	params.Set("q", c.buildSearchQuery(language, timeRange))
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("per_page", "100")

	endpoint := fmt.Sprintf("%s/search/repositories?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "app-tech-radar")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	c.updateRateLimit(resp.Header)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if payload.Items == nil {
		return nil, fmt.Errorf("%w: campo items ausente", ErrMalformedPayload)
	}

	return normalizeRepositories(*payload.Items), nil
}

// normalizeRepositories aplica os defaults de campos opcionais.
// Linguagem ausente fica vazia (repositório não entra na agregação por
// linguagem); descrição ausente fica vazia; topics nunca fica nil.
func normalizeRepositories(items []models.Repository) []models.Repository {
	repos := make([]models.Repository, 0, len(items))
	for _, item := range items {
		if item.Topics == nil {
			item.Topics = []string{}
		}
		repos = append(repos, item)
	}
	return repos
}

// buildSearchQuery monta a expressão de busca: limite inferior de data de
// criação derivado do time range, piso de estrelas e filtro opcional de
// linguagem.
func (c *Client) buildSearchQuery(language, timeRange string) string {
	days := models.TimeRangeDays(timeRange)
	date := time.Now().AddDate(0, 0, -days).Format("2006-01-02")

	query := fmt.Sprintf("created:>%s stars:>10", date)
	if language != "" && language != "all" {
		query += " language:" + language
	}
	return query
}

// waitForRateLimit suspende a chamada até o reset quando o orçamento restante
// está abaixo do threshold. A espera é limitada pelo resetAt conhecido e pode
// ser cancelada pelo contexto do chamador.
func (c *Client) waitForRateLimit(ctx context.Context) error {
	c.mu.Lock()
	rl := c.rateLimit
	c.mu.Unlock()

	if rl == nil || rl.Remaining >= c.threshold {
		return nil
	}

	wait := time.Until(rl.ResetAt())
	if wait <= 0 {
		return nil
	}

	logger.Log.Warn("rate limit próximo do esgotamento, aguardando reset",
		zap.Duration("wait", wait), zap.Int("remaining", rl.Remaining))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrRateLimited, ctx.Err())
	}
}

// updateRateLimit atualiza o estado a partir dos headers da resposta.
// Headers ausentes caem em defaults permissivos (60 requisições, reset em 1h).
func (c *Client) updateRateLimit(h http.Header) {
	info := &models.RateLimitInfo{
		Limit:     headerInt(h, "x-ratelimit-limit", 60),
		Remaining: headerInt(h, "x-ratelimit-remaining", 60),
		Reset:     int64(headerInt(h, "x-ratelimit-reset", int(time.Now().Unix())+3600)),
	}

	c.mu.Lock()
	c.rateLimit = info
	c.mu.Unlock()
}

func headerInt(h http.Header, key string, defaultValue int) int {
	if v := h.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// staleFallback lê a chave ignorando expiração. Usado quando o upstream
// falha: servir dado vencido é melhor que falhar a requisição.
func (c *Client) staleFallback(key string) ([]models.Repository, bool) {
	v, ok := c.cache.GetIgnoringExpiry(key)
	if !ok {
		return nil, false
	}
	logger.Log.Warn("servindo dados vencidos do cache (upstream indisponível)",
		zap.String("key", key))
	return v.([]models.Repository), true
}

// RateLimitStatus retorna o último estado de rate limit observado (nil antes
// da primeira chamada).
func (c *Client) RateLimitStatus() *models.RateLimitInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rateLimit == nil {
		return nil
	}
	snapshot := *c.rateLimit
	return &snapshot
}

// ClearCache invalida entradas do cache. Com pattern vazio limpa tudo;
// caso contrário remove as chaves que contêm o pattern.
func (c *Client) ClearCache(pattern string) int {
	if pattern == "" {
		total := c.cache.Stats().Total
		c.cache.Clear()
		logger.Log.Info("cache limpo por completo", zap.Int("entries", total))
		return total
	}

	removed := 0
	for _, key := range c.cache.Keys() {
		if strings.Contains(key, pattern) {
			c.cache.Delete(key)
			removed++
		}
	}
	logger.Log.Info("cache invalidado por pattern",
		zap.String("pattern", pattern), zap.Int("removed", removed))
	return removed
}

// CacheStats expõe o snapshot de diagnóstico do cache.
func (c *Client) CacheStats() cache.Stats {
	return c.cache.Stats()
}
