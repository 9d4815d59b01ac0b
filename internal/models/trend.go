package models

import "time"

// Time ranges reconhecidos pela API e pelo particionamento do store.
const (
	TimeRange1d  = "1d"
	TimeRange7d  = "7d"
	TimeRange30d = "30d"

	DefaultTimeRange = TimeRange7d
)

// timeRangeDays mapeia cada time range para a janela em dias.
var timeRangeDays = map[string]int{
	TimeRange1d:  1,
	TimeRange7d:  7,
	TimeRange30d: 30,
}

// NormalizeTimeRange devolve o time range reconhecido, ou o default (7d)
// para valores desconhecidos ou vazios.
func NormalizeTimeRange(tr string) string {
	if _, ok := timeRangeDays[tr]; ok {
		return tr
	}
	return DefaultTimeRange
}

// TimeRangeDays devolve a janela em dias de um time range (com default 7d).
func TimeRangeDays(tr string) int {
	return timeRangeDays[NormalizeTimeRange(tr)]
}

// TopRepository é a projeção de um repositório dentro de um agregado
// (os "top 5" de cada linguagem).
type TopRepository struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
}

// LanguageTrend é o registro agregado por (linguagem, time range) — a linha
// que vive no store persistente. Chave única: (Language, TimeRange).
type LanguageTrend struct {
	Language        string          `json:"language"`
	TimeRange       string          `json:"time_range"`
	TotalStars      int             `json:"total_stars"`
	TotalForks      int             `json:"total_forks"`
	RepositoryCount int             `json:"repository_count"`
	TrendingScore   int             `json:"trending_score"`
	TopRepositories []TopRepository `json:"top_repositories"`
	LastUpdated     time.Time       `json:"last_updated"`
}

// AverageStars calcula a média de estrelas por repositório do agregado.
func (t LanguageTrend) AverageStars() int {
	if t.RepositoryCount == 0 {
		return 0
	}
	return int(float64(t.TotalStars)/float64(t.RepositoryCount) + 0.5)
}
