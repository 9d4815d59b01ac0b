package store

import (
	"testing"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/models"
)

func TestTrendDocumentID(t *testing.T) {
	tests := []struct {
		name      string
		language  string
		timeRange string
		expected  string
	}{
		{"linguagem simples", "Go", "7d", "go-7d"},
		{"linguagem com espaço", "Jupyter Notebook", "30d", "jupyter-notebook-30d"},
		{"linguagem com acento", "Café", "7d", "cafe-7d"},
		{"linguagem vazia", "", "7d", "all-7d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrendDocumentID(tt.language, tt.timeRange); got != tt.expected {
				t.Errorf("TrendDocumentID(%q, %q) = %q; esperado %q", tt.language, tt.timeRange, got, tt.expected)
			}
		})
	}
}

func TestBuildTrendFilter(t *testing.T) {
	tests := []struct {
		name     string
		filter   TrendFilter
		expected string
	}{
		{
			name:     "apenas time range",
			filter:   TrendFilter{TimeRange: "7d"},
			expected: "time_range:=7d",
		},
		{
			name:     "com linguagens",
			filter:   TrendFilter{TimeRange: "30d", Languages: []string{"Go", "Rust"}},
			expected: "time_range:=30d && language:=[`Go`,`Rust`]",
		},
		{
			name:     "linguagem com espaço escapada",
			filter:   TrendFilter{TimeRange: "7d", Languages: []string{"Jupyter Notebook"}},
			expected: "time_range:=7d && language:=[`Jupyter Notebook`]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildTrendFilter(tt.filter); got != tt.expected {
				t.Errorf("buildTrendFilter() = %q; esperado %q", got, tt.expected)
			}
		})
	}
}

func TestDocToTrendRoundTrip(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	doc := trendDocument{
		ID:              "go-7d",
		Language:        "Go",
		TimeRange:       "7d",
		TotalStars:      1500,
		TotalForks:      120,
		RepositoryCount: 12,
		TrendingScore:   157,
		TopRepositories: `[{"name":"gin","full_name":"gin-gonic/gin","url":"https://github.com/gin-gonic/gin","stars":800,"forks":60}]`,
		LastUpdated:     now.Unix(),
	}

	trend := docToTrend(doc)

	if trend.Language != "Go" || trend.TimeRange != "7d" {
		t.Errorf("chave = (%q, %q); esperado (Go, 7d)", trend.Language, trend.TimeRange)
	}
	if trend.TotalStars != 1500 || trend.TrendingScore != 157 {
		t.Errorf("agregados = {%d %d}; esperado {1500 157}", trend.TotalStars, trend.TrendingScore)
	}
	if len(trend.TopRepositories) != 1 || trend.TopRepositories[0].FullName != "gin-gonic/gin" {
		t.Errorf("top repositories deserializado errado: %+v", trend.TopRepositories)
	}
	if !trend.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v; esperado %v", trend.LastUpdated, now)
	}
}

func TestDocToTrendEmptyTopRepositories(t *testing.T) {
	trend := docToTrend(trendDocument{Language: "Go", TimeRange: "7d"})
	if trend.TopRepositories == nil {
		t.Error("TopRepositories não deveria ser nil")
	}

	var top []models.TopRepository
	if len(trend.TopRepositories) != len(top) {
		t.Errorf("esperado lista vazia, recebido %+v", trend.TopRepositories)
	}
}
