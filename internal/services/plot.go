package services

import (
	"fmt"

	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"github.com/prefeitura-rio/app-tech-radar/internal/utils"
)

// BuildRadarTrace converte os agregados em uma série scatterpolar pronta
// para o frontend: r carrega os trending scores, theta os nomes das
// linguagens e customdata o resumo textual usado no hover.
func BuildRadarTrace(trends []models.LanguageTrend, timeRange string) models.PlotlyTrace {
	trace := models.PlotlyTrace{
		Type:       "scatterpolar",
		Mode:       "markers",
		R:          make([]int, 0, len(trends)),
		Theta:      make([]string, 0, len(trends)),
		Text:       make([]string, 0, len(trends)),
		CustomData: make([]string, 0, len(trends)),
		HoverInfo:  "text",
		Marker:     models.PlotlyMarker{Size: 10},
		Name:       fmt.Sprintf("Trending (%s)", models.NormalizeTimeRange(timeRange)),
	}

	for _, trend := range trends {
		trace.R = append(trace.R, trend.TrendingScore)
		trace.Theta = append(trace.Theta, trend.Language)
		trace.Text = append(trace.Text, hoverText(trend))
		trace.CustomData = append(trace.CustomData, topRepositorySummary(trend))
	}

	return trace
}

func hoverText(trend models.LanguageTrend) string {
	return fmt.Sprintf("%s: score %d (%d repos, %d stars, avg %d)",
		trend.Language, trend.TrendingScore, trend.RepositoryCount,
		trend.TotalStars, trend.AverageStars())
}

// topRepositorySummary descreve o repositório líder da linguagem.
// Descrições vêm de READMEs e frequentemente trazem markdown que não deve
// vazar para o tooltip do gráfico.
func topRepositorySummary(trend models.LanguageTrend) string {
	if len(trend.TopRepositories) == 0 {
		return ""
	}

	top := trend.TopRepositories[0]
	description := utils.StripMarkdown(top.Description)
	if description == "" {
		description = "No description"
	}
	return fmt.Sprintf("%s: %s", top.FullName, description)
}
