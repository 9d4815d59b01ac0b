package services

import (
	"math"
	"sort"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/models"
)

const topRepositoriesPerLanguage = 5

// TrendingScore calcula o score canônico de uma linguagem a partir dos
// agregados. Logarítmico nas estrelas e forks para amortecer outliers,
// linear na contagem de repositórios.
func TrendingScore(totalStars, totalForks, repoCount int) int {
	score := math.Log(float64(totalStars)+1)*10 +
		math.Log(float64(totalForks)+1)*5 +
		float64(repoCount)*5
	return int(math.Round(score))
}

// AggregateByLanguage agrupa repositórios por linguagem e produz um
// agregado por grupo, ordenado por trending score decrescente.
//
// Repositórios sem linguagem detectada ficam de fora: não há eixo no radar
// para eles. Eles continuam disponíveis na coleção de repositórios brutos.
func AggregateByLanguage(repos []models.Repository, timeRange string) []models.LanguageTrend {
	groups := make(map[string][]models.Repository)
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		groups[repo.Language] = append(groups[repo.Language], repo)
	}

	now := time.Now()
	trends := make([]models.LanguageTrend, 0, len(groups))
	for language, group := range groups {
		totalStars := 0
		totalForks := 0
		for _, repo := range group {
			totalStars += repo.Stars
			totalForks += repo.Forks
		}

		trends = append(trends, models.LanguageTrend{
			Language:        language,
			TimeRange:       models.NormalizeTimeRange(timeRange),
			TotalStars:      totalStars,
			TotalForks:      totalForks,
			RepositoryCount: len(group),
			TrendingScore:   TrendingScore(totalStars, totalForks, len(group)),
			TopRepositories: topRepositories(group),
			LastUpdated:     now,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].TrendingScore == trends[j].TrendingScore {
			return trends[i].Language < trends[j].Language
		}
		return trends[i].TrendingScore > trends[j].TrendingScore
	})

	return trends
}

// topRepositories projeta os N repositórios com mais estrelas do grupo.
func topRepositories(group []models.Repository) []models.TopRepository {
	sorted := make([]models.Repository, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Stars > sorted[j].Stars
	})

	limit := topRepositoriesPerLanguage
	if len(sorted) < limit {
		limit = len(sorted)
	}

	top := make([]models.TopRepository, 0, limit)
	for _, repo := range sorted[:limit] {
		top = append(top, models.TopRepository{
			Name:        repo.Name,
			FullName:    repo.FullName,
			URL:         repo.URL,
			Description: repo.Description,
			Stars:       repo.Stars,
			Forks:       repo.Forks,
		})
	}
	return top
}
