package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/cache"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
)

const searchPayload = `{
	"total_count": 2,
	"items": [
		{
			"id": 1,
			"name": "fastapi",
			"full_name": "tiangolo/fastapi",
			"html_url": "https://github.com/tiangolo/fastapi",
			"description": "FastAPI framework",
			"stargazers_count": 500,
			"forks_count": 40,
			"language": "Python",
			"topics": ["api", "python"]
		},
		{
			"id": 2,
			"name": "mystery",
			"full_name": "someone/mystery",
			"html_url": "https://github.com/someone/mystery",
			"stargazers_count": 120,
			"forks_count": 8
		}
	]
}`

func newTestClient(baseURL string) (*Client, cache.Cache) {
	c := cache.NewTTLCache(100)
	client := NewClient(Options{
		BaseURL:            baseURL,
		Timeout:            2 * time.Second,
		CacheTTL:           time.Minute,
		RateLimitThreshold: 10,
	}, c)
	return client, c
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		name      string
		language  string
		timeRange string
		expected  string
	}{
		{"linguagem e janela", "Go", "30d", "trending:Go:30d"},
		{"sem linguagem usa all", "", "7d", "trending:all:7d"},
		{"janela inválida cai no default", "Rust", "99d", "trending:Rust:7d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheKey(tt.language, tt.timeRange); got != tt.expected {
				t.Errorf("CacheKey(%q, %q) = %q; esperado %q", tt.language, tt.timeRange, got, tt.expected)
			}
		})
	}
}

func TestFetchTrendingLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sort"); got != "stars" {
			t.Errorf("sort = %q; esperado stars", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q; esperado 100", got)
		}
		w.Header().Set("x-ratelimit-limit", "30")
		w.Header().Set("x-ratelimit-remaining", "25")
		w.Header().Set("x-ratelimit-reset", "1900000000")
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client, c := newTestClient(server.URL)

	repos, err := client.FetchTrending(context.Background(), "Python", "7d")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("len(repos) = %d; esperado 2", len(repos))
	}
	if repos[0].FullName != "tiangolo/fastapi" {
		t.Errorf("FullName = %q; esperado tiangolo/fastapi", repos[0].FullName)
	}
	if repos[0].Stars != 500 {
		t.Errorf("Stars = %d; esperado 500", repos[0].Stars)
	}

	// campos opcionais ausentes recebem defaults
	if repos[1].Language != "" || repos[1].Description != "" {
		t.Errorf("campos opcionais deveriam ficar vazios: %+v", repos[1])
	}
	if repos[1].Topics == nil {
		t.Error("Topics não deveria ser nil")
	}

	// o resultado deve ter sido cacheado
	if !c.Has(CacheKey("Python", "7d")) {
		t.Error("resultado live não foi persistido no cache")
	}

	rl := client.RateLimitStatus()
	if rl == nil {
		t.Fatal("RateLimitStatus() = nil após chamada live")
	}
	if rl.Limit != 30 || rl.Remaining != 25 || rl.Reset != 1900000000 {
		t.Errorf("rate limit = %+v; esperado {30 25 1900000000}", rl)
	}
}

func TestFetchTrendingFreshCacheSkipsNetwork(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client, c := newTestClient(server.URL)

	seeded := []models.Repository{{ID: 99, Name: "cached", Stars: 10}}
	c.Set(CacheKey("Go", "7d"), seeded, time.Minute)

	repos, err := client.FetchTrending(context.Background(), "Go", "7d")
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "cached" {
		t.Errorf("esperado resultado do cache, recebido %+v", repos)
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Errorf("servidor recebeu %d requisições; esperado 0", hits)
	}
}

func TestFetchTrendingStaleFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, c := newTestClient(server.URL)

	// TTL negativo insere a entrada já vencida
	stale := []models.Repository{{ID: 7, Name: "stale", Stars: 42}}
	c.Set(CacheKey("Rust", "30d"), stale, -time.Minute)

	repos, err := client.FetchTrending(context.Background(), "Rust", "30d")
	if err != nil {
		t.Fatalf("fallback vencido deveria suprimir o erro: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "stale" {
		t.Errorf("esperado dado vencido do cache, recebido %+v", repos)
	}
}

func TestFetchTrendingUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)

	_, err := client.FetchTrending(context.Background(), "Go", "7d")
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v; esperado ErrUpstreamUnavailable", err)
	}
}

func TestFetchTrendingMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"json inválido", `{"items": [`},
		{"campo items ausente", `{"total_count": 0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, _ := newTestClient(server.URL)

			_, err := client.FetchTrending(context.Background(), "", "7d")
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("err = %v; esperado ErrMalformedPayload", err)
			}
		})
	}
}

func TestFetchTrendingRateLimitWaitCancelled(t *testing.T) {
	client, _ := newTestClient("http://localhost:0")

	// orçamento abaixo do threshold com reset distante força a espera
	client.mu.Lock()
	client.rateLimit = &models.RateLimitInfo{
		Limit:     60,
		Remaining: 1,
		Reset:     time.Now().Add(time.Hour).Unix(),
	}
	client.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchTrending(ctx, "Go", "7d")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v; esperado ErrRateLimited", err)
	}
}

func TestFetchTrendingRateLimitPastResetProceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)

	// reset no passado: não deve haver espera
	client.mu.Lock()
	client.rateLimit = &models.RateLimitInfo{
		Limit:     60,
		Remaining: 1,
		Reset:     time.Now().Add(-time.Minute).Unix(),
	}
	client.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := client.FetchTrending(context.Background(), "Go", "7d"); err != nil {
			t.Errorf("erro inesperado: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("chamada bloqueou mesmo com reset no passado")
	}
}

func TestFetchTrendingCoalescesConcurrentCalls(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(searchPayload))
	}))
	defer server.Close()

	client, _ := newTestClient(server.URL)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repos, err := client.FetchTrending(context.Background(), "Python", "7d")
			if err != nil {
				t.Errorf("erro inesperado: %v", err)
				return
			}
			if len(repos) != 2 {
				t.Errorf("len(repos) = %d; esperado 2", len(repos))
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("servidor recebeu %d requisições; esperado 1 (coalescência)", got)
	}
}

func TestBuildSearchQuery(t *testing.T) {
	client, _ := newTestClient("http://localhost:0")
	sevenDaysAgo := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	thirtyDaysAgo := time.Now().AddDate(0, 0, -30).Format("2006-01-02")

	tests := []struct {
		name      string
		language  string
		timeRange string
		expected  string
	}{
		{"sem linguagem", "", "7d", "created:>" + sevenDaysAgo + " stars:>10"},
		{"all não filtra linguagem", "all", "7d", "created:>" + sevenDaysAgo + " stars:>10"},
		{"com linguagem", "Go", "30d", "created:>" + thirtyDaysAgo + " stars:>10 language:Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := client.buildSearchQuery(tt.language, tt.timeRange); got != tt.expected {
				t.Errorf("buildSearchQuery(%q, %q) = %q; esperado %q", tt.language, tt.timeRange, got, tt.expected)
			}
		})
	}
}

func TestUpdateRateLimitDefaults(t *testing.T) {
	client, _ := newTestClient("http://localhost:0")

	before := time.Now().Unix()
	client.updateRateLimit(http.Header{})

	rl := client.RateLimitStatus()
	if rl.Limit != 60 || rl.Remaining != 60 {
		t.Errorf("defaults = {%d %d}; esperado {60 60}", rl.Limit, rl.Remaining)
	}
	if rl.Reset < before+3500 || rl.Reset > before+3700 {
		t.Errorf("Reset = %d; esperado ~now+3600", rl.Reset)
	}
}

func TestClearCache(t *testing.T) {
	client, c := newTestClient("http://localhost:0")

	c.Set("trending:Go:7d", []models.Repository{}, time.Minute)
	c.Set("trending:Go:30d", []models.Repository{}, time.Minute)
	c.Set("trending:Python:7d", []models.Repository{}, time.Minute)

	if removed := client.ClearCache("Go"); removed != 2 {
		t.Errorf("ClearCache(Go) = %d; esperado 2", removed)
	}
	if !c.Has("trending:Python:7d") {
		t.Error("chave fora do pattern não deveria ter sido removida")
	}

	if removed := client.ClearCache(""); removed != 1 {
		t.Errorf("ClearCache(\"\") = %d; esperado 1", removed)
	}
	if c.Stats().Total != 0 {
		t.Error("cache deveria estar vazio após limpeza total")
	}
}
