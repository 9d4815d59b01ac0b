package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/config"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"github.com/typesense/typesense-go/v3/typesense"
	"github.com/typesense/typesense-go/v3/typesense/api"
	"github.com/typesense/typesense-go/v3/typesense/api/pointer"
	"go.uber.org/zap"
)

const defaultFindLimit = 50

// Client implementa Store sobre o Typesense.
type Client struct {
	ts *typesense.Client
}

func NewClient(cfg *config.Config) *Client {
	ts := typesense.NewClient(
		typesense.WithServer(fmt.Sprintf("%s://%s:%s", cfg.TypesenseProtocol, cfg.TypesenseHost, cfg.TypesensePort)),
		typesense.WithAPIKey(cfg.TypesenseAPIKey),
	)
	return &Client{ts: ts}
}

// trendDocument é a representação persistida de models.LanguageTrend.
type trendDocument struct {
	ID              string `json:"id"`
	Language        string `json:"language"`
	TimeRange       string `json:"time_range"`
	TotalStars      int64  `json:"total_stars"`
	TotalForks      int64  `json:"total_forks"`
	RepositoryCount int    `json:"repository_count"`
	TrendingScore   int64  `json:"trending_score"`
	TopRepositories string `json:"top_repositories"`
	LastUpdated     int64  `json:"last_updated"`
}

// repoDocument é a representação persistida de um repositório bruto.
type repoDocument struct {
	ID          string `json:"id"`
	RepoID      int64  `json:"repo_id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Stars       int64  `json:"stars"`
	Forks       int64  `json:"forks"`
	Language    string `json:"language"`
	TimeRange   string `json:"time_range"`
	LastFetched int64  `json:"last_fetched"`
}

// EnsureCollections cria as coleções quando ainda não existem.
// Idempotente: chamado no boot da API e pelo comando de migração.
func (c *Client) EnsureCollections(ctx context.Context) error {
	for _, schema := range []*api.CollectionSchema{TrendsSchema(), ReposSchema()} {
		_, err := c.ts.Collection(schema.Name).Retrieve(ctx)
		if err == nil {
			continue
		}

		errMsg := err.Error()
		if !strings.Contains(errMsg, "404") && !strings.Contains(errMsg, "Not found") && !strings.Contains(errMsg, "Not Found") {
			return fmt.Errorf("erro ao verificar coleção %s: %w", schema.Name, err)
		}

		logger.Log.Info("criando coleção", zap.String("collection", schema.Name))
		if _, err := c.ts.Collections().Create(ctx, schema); err != nil {
			return fmt.Errorf("erro ao criar coleção %s: %w", schema.Name, err)
		}
	}
	return nil
}

func (c *Client) UpsertTrends(ctx context.Context, trends []models.LanguageTrend) error {
	now := time.Now()
	for _, trend := range trends {
		topJSON, err := json.Marshal(trend.TopRepositories)
		if err != nil {
			return fmt.Errorf("erro ao serializar top repositories de %s: %w", trend.Language, err)
		}

		lastUpdated := trend.LastUpdated
		if lastUpdated.IsZero() {
			lastUpdated = now
		}

		doc := trendDocument{
			ID:              TrendDocumentID(trend.Language, trend.TimeRange),
			Language:        trend.Language,
			TimeRange:       trend.TimeRange,
			TotalStars:      int64(trend.TotalStars),
			TotalForks:      int64(trend.TotalForks),
			RepositoryCount: trend.RepositoryCount,
			TrendingScore:   int64(trend.TrendingScore),
			TopRepositories: string(topJSON),
			LastUpdated:     lastUpdated.Unix(),
		}

		if _, err := c.ts.Collection(TrendsCollection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{}); err != nil {
			return fmt.Errorf("erro ao gravar tendência %s/%s: %w", trend.Language, trend.TimeRange, err)
		}
	}
	return nil
}

func (c *Client) FindTrends(ctx context.Context, filter TrendFilter) ([]models.LanguageTrend, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultFindLimit
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		FilterBy: pointer.String(buildTrendFilter(filter)),
		SortBy:   pointer.String("trending_score:desc"),
		Page:     pointer.Int(1),
		PerPage:  pointer.Int(limit),
	}

	searchResult, err := c.ts.Collection(TrendsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar tendências: %w", err)
	}

	trends := make([]models.LanguageTrend, 0, limit)
	if searchResult.Hits == nil {
		return trends, nil
	}

	for _, hit := range *searchResult.Hits {
		if hit.Document == nil {
			continue
		}

		jsonData, err := json.Marshal(hit.Document)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar documento: %w", err)
		}

		var doc trendDocument
		if err := json.Unmarshal(jsonData, &doc); err != nil {
			return nil, fmt.Errorf("erro ao deserializar documento: %w", err)
		}

		trends = append(trends, docToTrend(doc))
	}

	return trends, nil
}

func (c *Client) LatestUpdate(ctx context.Context, timeRange string) (time.Time, error) {
	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String("*"),
		FilterBy: pointer.String(fmt.Sprintf("time_range:=%s", timeRange)),
		SortBy:   pointer.String("last_updated:desc"),
		Page:     pointer.Int(1),
		PerPage:  pointer.Int(1),
	}

	searchResult, err := c.ts.Collection(TrendsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return time.Time{}, fmt.Errorf("erro ao consultar última atualização: %w", err)
	}

	if searchResult.Hits == nil || len(*searchResult.Hits) == 0 {
		return time.Time{}, nil
	}

	hit := (*searchResult.Hits)[0]
	jsonData, err := json.Marshal(hit.Document)
	if err != nil {
		return time.Time{}, fmt.Errorf("erro ao serializar documento: %w", err)
	}

	var doc trendDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return time.Time{}, fmt.Errorf("erro ao deserializar documento: %w", err)
	}

	return time.Unix(doc.LastUpdated, 0), nil
}

func (c *Client) UpsertRepositories(ctx context.Context, timeRange string, repos []models.Repository) error {
	now := time.Now().Unix()
	for _, repo := range repos {
		doc := repoDocument{
			ID:          fmt.Sprintf("%d-%s", repo.ID, timeRange),
			RepoID:      repo.ID,
			Name:        repo.Name,
			FullName:    repo.FullName,
			URL:         repo.URL,
			Description: repo.Description,
			Stars:       int64(repo.Stars),
			Forks:       int64(repo.Forks),
			Language:    repo.Language,
			TimeRange:   timeRange,
			LastFetched: now,
		}

		if _, err := c.ts.Collection(ReposCollection).Documents().Upsert(ctx, doc, &api.DocumentIndexParameters{}); err != nil {
			return fmt.Errorf("erro ao gravar repositório %s: %w", repo.FullName, err)
		}
	}
	return nil
}

func (c *Client) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	epoch := cutoff.Unix()
	total := 0

	targets := []struct {
		collection string
		field      string
	}{
		{TrendsCollection, "last_updated"},
		{ReposCollection, "last_fetched"},
	}

	for _, target := range targets {
		deleted, err := c.ts.Collection(target.collection).Documents().Delete(ctx, &api.DeleteDocumentsParams{
			FilterBy: pointer.String(fmt.Sprintf("%s:<%d", target.field, epoch)),
		})
		if err != nil {
			return total, fmt.Errorf("erro ao limpar coleção %s: %w", target.collection, err)
		}
		total += deleted
	}

	return total, nil
}

func (c *Client) Health(ctx context.Context) error {
	ok, err := c.ts.Health(ctx, 5*time.Second)
	if err != nil {
		return fmt.Errorf("typesense indisponível: %w", err)
	}
	if !ok {
		return fmt.Errorf("typesense reportou estado não saudável")
	}
	return nil
}

// buildTrendFilter constrói a expressão de filtro da busca de tendências.
// Linguagens com espaço (ex: Jupyter Notebook) exigem escape com crases.
func buildTrendFilter(filter TrendFilter) string {
	expr := fmt.Sprintf("time_range:=%s", filter.TimeRange)
	if len(filter.Languages) > 0 {
		quoted := make([]string, 0, len(filter.Languages))
		for _, lang := range filter.Languages {
			quoted = append(quoted, "`"+lang+"`")
		}
		expr += fmt.Sprintf(" && language:=[%s]", strings.Join(quoted, ","))
	}
	return expr
}

func docToTrend(doc trendDocument) models.LanguageTrend {
	var top []models.TopRepository
	if doc.TopRepositories != "" {
		// payload gravado por nós; erro aqui indica documento corrompido
		// e degrada para lista vazia
		_ = json.Unmarshal([]byte(doc.TopRepositories), &top)
	}
	if top == nil {
		top = []models.TopRepository{}
	}

	return models.LanguageTrend{
		Language:        doc.Language,
		TimeRange:       doc.TimeRange,
		TotalStars:      int(doc.TotalStars),
		TotalForks:      int(doc.TotalForks),
		RepositoryCount: doc.RepositoryCount,
		TrendingScore:   int(doc.TrendingScore),
		TopRepositories: top,
		LastUpdated:     time.Unix(doc.LastUpdated, 0),
	}
}
