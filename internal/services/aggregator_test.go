package services

import (
	"testing"

	"github.com/prefeitura-rio/app-tech-radar/internal/models"
)

func TestTrendingScore(t *testing.T) {
	tests := []struct {
		name       string
		totalStars int
		totalForks int
		repoCount  int
		expected   int
	}{
		{"zeros", 0, 0, 0, 0},
		{"valores de referência", 100, 10, 5, 83},
		{"apenas contagem", 0, 0, 3, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrendingScore(tt.totalStars, tt.totalForks, tt.repoCount)
			if got != tt.expected {
				t.Errorf("TrendingScore(%d, %d, %d) = %d; esperado %d",
					tt.totalStars, tt.totalForks, tt.repoCount, got, tt.expected)
			}
		})
	}
}

func TestAggregateByLanguage(t *testing.T) {
	repos := []models.Repository{
		{ID: 1, Name: "gin", FullName: "gin-gonic/gin", Language: "Go", Stars: 800, Forks: 60},
		{ID: 2, Name: "fiber", FullName: "gofiber/fiber", Language: "Go", Stars: 400, Forks: 30},
		{ID: 3, Name: "fastapi", FullName: "tiangolo/fastapi", Language: "Python", Stars: 200, Forks: 20},
		{ID: 4, Name: "dotfiles", FullName: "someone/dotfiles", Language: "", Stars: 999, Forks: 1},
	}

	trends := AggregateByLanguage(repos, "7d")

	if len(trends) != 2 {
		t.Fatalf("len(trends) = %d; esperado 2 (sem linguagem fica de fora)", len(trends))
	}

	// Go acumula mais estrelas, deve vir primeiro
	if trends[0].Language != "Go" {
		t.Errorf("trends[0].Language = %q; esperado Go", trends[0].Language)
	}
	if trends[0].TotalStars != 1200 || trends[0].TotalForks != 90 {
		t.Errorf("agregados Go = {%d %d}; esperado {1200 90}", trends[0].TotalStars, trends[0].TotalForks)
	}
	if trends[0].RepositoryCount != 2 {
		t.Errorf("RepositoryCount Go = %d; esperado 2", trends[0].RepositoryCount)
	}
	if trends[0].TrendingScore <= trends[1].TrendingScore {
		t.Error("ordenação por trending score decrescente violada")
	}

	// top repositories ordenados por estrelas
	top := trends[0].TopRepositories
	if len(top) != 2 || top[0].Name != "gin" || top[1].Name != "fiber" {
		t.Errorf("top repositories de Go incorretos: %+v", top)
	}
}

func TestAggregateByLanguageTopFiveCap(t *testing.T) {
	var repos []models.Repository
	for i := 0; i < 8; i++ {
		repos = append(repos, models.Repository{
			ID:       int64(i),
			Name:     "repo",
			Language: "Rust",
			Stars:    i * 10,
		})
	}

	trends := AggregateByLanguage(repos, "30d")
	if len(trends) != 1 {
		t.Fatalf("len(trends) = %d; esperado 1", len(trends))
	}
	if len(trends[0].TopRepositories) != 5 {
		t.Errorf("len(top) = %d; esperado 5", len(trends[0].TopRepositories))
	}
	if trends[0].TopRepositories[0].Stars != 70 {
		t.Errorf("top[0].Stars = %d; esperado 70 (mais estrelas primeiro)", trends[0].TopRepositories[0].Stars)
	}
}

func TestAggregateByLanguageEmpty(t *testing.T) {
	trends := AggregateByLanguage(nil, "7d")
	if len(trends) != 0 {
		t.Errorf("len(trends) = %d; esperado 0", len(trends))
	}
}

func TestAggregateByLanguageScoreTieBreaksAlphabetically(t *testing.T) {
	repos := []models.Repository{
		{ID: 1, Language: "Zig", Stars: 50, Forks: 5},
		{ID: 2, Language: "Ada", Stars: 50, Forks: 5},
	}

	trends := AggregateByLanguage(repos, "7d")
	if len(trends) != 2 {
		t.Fatalf("len(trends) = %d; esperado 2", len(trends))
	}
	if trends[0].Language != "Ada" {
		t.Errorf("empate deveria ordenar alfabeticamente; recebido %q primeiro", trends[0].Language)
	}
}
