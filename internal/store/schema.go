package store

import (
	"strings"

	"github.com/prefeitura-rio/app-tech-radar/internal/utils"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
)

const (
	// TrendsCollection guarda um documento por par (linguagem, time range).
	TrendsCollection = "radar_trends"

	// ReposCollection guarda os repositórios brutos de cada fetch, um
	// documento por par (repositório, time range).
	ReposCollection = "radar_repos"
)

// TrendsSchema descreve a coleção de tendências agregadas.
// top_repositories é serializado como JSON string: o payload é opaco para
// busca e só precisa voltar inteiro na leitura.
func TrendsSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: TrendsCollection,
		Fields: []api.Field{
			{Name: "language", Type: "string", Facet: pointer.True()},
			{Name: "time_range", Type: "string", Facet: pointer.True()},
			{Name: "total_stars", Type: "int64"},
			{Name: "total_forks", Type: "int64"},
			{Name: "repository_count", Type: "int32"},
			{Name: "trending_score", Type: "int64", Sort: pointer.True()},
			{Name: "top_repositories", Type: "string", Optional: pointer.True()},
			{Name: "last_updated", Type: "int64", Sort: pointer.True()},
		},
		DefaultSortingField: pointer.String("trending_score"),
	}
}

// ReposSchema descreve a coleção de repositórios brutos.
func ReposSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: ReposCollection,
		Fields: []api.Field{
			{Name: "repo_id", Type: "int64"},
			{Name: "name", Type: "string"},
			{Name: "full_name", Type: "string"},
			{Name: "url", Type: "string"},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "stars", Type: "int64", Sort: pointer.True()},
			{Name: "forks", Type: "int64"},
			{Name: "language", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "time_range", Type: "string", Facet: pointer.True()},
			{Name: "last_fetched", Type: "int64", Sort: pointer.True()},
		},
		DefaultSortingField: pointer.String("stars"),
	}
}

// TrendDocumentID deriva o id determinístico de um documento de tendência,
// garantindo upsert idempotente por par (linguagem, time range).
func TrendDocumentID(language, timeRange string) string {
	slug := strings.ReplaceAll(utils.NormalizeLanguage(language), " ", "-")
	if slug == "" {
		slug = "all"
	}
	return slug + "-" + timeRange
}
