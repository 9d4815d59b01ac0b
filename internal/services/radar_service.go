// Package services contém a lógica de domínio do radar: agregação por
// linguagem, resolução de frescor entre store e GitHub e a transformação
// para o formato de gráfico do frontend.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/config"
	"github.com/prefeitura-rio/app-tech-radar/internal/github"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"github.com/prefeitura-rio/app-tech-radar/internal/store"
	"github.com/prefeitura-rio/app-tech-radar/internal/utils"
	"go.uber.org/zap"
)

// RadarService decide, a cada leitura, entre servir o store persistente
// (dentro do max age), disparar um refresh live ou degradar para dados
// vencidos quando o GitHub está indisponível.
type RadarService struct {
	store   store.Store
	fetcher github.Fetcher

	maxAge     time.Duration
	fetchDelay time.Duration
	languages  []string
	timeRanges []string
}

func NewRadarService(st store.Store, fetcher github.Fetcher, cfg *config.Config) *RadarService {
	return &RadarService{
		store:      st,
		fetcher:    fetcher,
		maxAge:     cfg.DataMaxAge,
		fetchDelay: cfg.FetchDelay,
		languages:  cfg.TrackedLanguages,
		timeRanges: cfg.TrackedTimeRanges,
	}
}

// GetRadarData resolve a leitura do radar para a janela pedida.
//
// Ordem de resolução:
//  1. store com last_updated dentro do max age: serve direto (source cache)
//  2. store vencido ou vazio: busca live, responde com o agregado em
//     memória e persiste em background (source live); a resposta nunca
//     espera a escrita no store
//  3. busca live falhou mas existe dado vencido: serve assim mesmo
//     (source stale-cache), nunca falhando uma leitura que pode ser
//     atendida com dado antigo
func (s *RadarService) GetRadarData(ctx context.Context, query models.RadarQuery) (*models.RadarResponse, error) {
	timeRange := models.NormalizeTimeRange(query.TimeRange)
	languages := s.canonicalLanguages(query.Language)

	lastUpdated, err := s.store.LatestUpdate(ctx, timeRange)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar frescor do store: %w", err)
	}

	hasData := !lastUpdated.IsZero()
	isFresh := hasData && time.Since(lastUpdated) <= s.maxAge

	if !isFresh {
		repos, fetchErr := s.fetcher.FetchTrending(ctx, "", timeRange)
		if fetchErr != nil {
			if !hasData {
				return nil, fetchErr
			}
			logger.Log.Warn("busca live falhou, servindo store vencido",
				zap.String("time_range", timeRange), zap.Error(fetchErr))
			return s.respondFromStore(ctx, timeRange, languages, query.Limit,
				models.SourceStaleCache, lastUpdated, false)
		}

		trends := AggregateByLanguage(repos, timeRange)
		s.persistAsync(timeRange, trends, repos)

		filtered := filterTrends(trends, languages, query.Limit)
		return &models.RadarResponse{
			Success:   true,
			Data:      filtered,
			Count:     len(filtered),
			TimeRange: timeRange,
			Meta: models.ResponseMeta{
				Source:      models.SourceLive,
				LastUpdated: time.Now(),
				IsFresh:     true,
			},
			RateLimitStatus: s.fetcher.RateLimitStatus(),
		}, nil
	}

	return s.respondFromStore(ctx, timeRange, languages, query.Limit,
		models.SourceCache, lastUpdated, true)
}

func (s *RadarService) respondFromStore(ctx context.Context, timeRange string, languages []string, limit int, source string, lastUpdated time.Time, isFresh bool) (*models.RadarResponse, error) {
	trends, err := s.store.FindTrends(ctx, store.TrendFilter{
		TimeRange: timeRange,
		Languages: languages,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar tendências: %w", err)
	}

	return &models.RadarResponse{
		Success:   true,
		Data:      trends,
		Count:     len(trends),
		TimeRange: timeRange,
		Meta: models.ResponseMeta{
			Source:      source,
			LastUpdated: lastUpdated,
			IsFresh:     isFresh,
		},
		RateLimitStatus: s.fetcher.RateLimitStatus(),
	}, nil
}

// persistAsync grava agregados e repositórios brutos em background.
// Falhas de persistência são logadas e absorvidas: nunca chegam ao cliente
// e nunca atrasam a resposta.
func (s *RadarService) persistAsync(timeRange string, trends []models.LanguageTrend, repos []models.Repository) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.store.UpsertTrends(ctx, trends); err != nil {
			logger.Log.Error("falha ao persistir tendências",
				zap.String("time_range", timeRange), zap.Error(err))
		}
		if err := s.store.UpsertRepositories(ctx, timeRange, repos); err != nil {
			logger.Log.Error("falha ao persistir repositórios",
				zap.String("time_range", timeRange), zap.Error(err))
		}
	}()
}

// filterTrends aplica o filtro de linguagens e o limite sobre um agregado
// recém-calculado em memória (caminho live, sem ida ao store).
func filterTrends(trends []models.LanguageTrend, languages []string, limit int) []models.LanguageTrend {
	filtered := trends
	if len(languages) > 0 {
		wanted := make(map[string]bool, len(languages))
		for _, lang := range languages {
			wanted[utils.NormalizeLanguage(lang)] = true
		}

		filtered = make([]models.LanguageTrend, 0, len(languages))
		for _, trend := range trends {
			if wanted[utils.NormalizeLanguage(trend.Language)] {
				filtered = append(filtered, trend)
			}
		}
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// Refresh busca os repositórios em alta de uma combinação, agrega por
// linguagem e persiste agregados e repositórios brutos. Retorna o número
// de repositórios processados.
func (s *RadarService) Refresh(ctx context.Context, language, timeRange string) (int, error) {
	timeRange = models.NormalizeTimeRange(timeRange)

	repos, err := s.fetcher.FetchTrending(ctx, language, timeRange)
	if err != nil {
		return 0, err
	}

	trends := AggregateByLanguage(repos, timeRange)
	if err := s.store.UpsertTrends(ctx, trends); err != nil {
		return 0, err
	}
	if err := s.store.UpsertRepositories(ctx, timeRange, repos); err != nil {
		return 0, err
	}

	logger.Log.Info("radar atualizado",
		zap.String("language", language),
		zap.String("time_range", timeRange),
		zap.Int("repositories", len(repos)),
		zap.Int("languages", len(trends)))

	return len(repos), nil
}

// MatrixResult resume uma passada completa da matriz de fetch.
type MatrixResult struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
	Repositories int `json:"repositories"`
}

// Success indica se a passada produziu algum dado. Falhas parciais não
// derrubam a passada; só é falha quando todas as combinações falharam.
func (r MatrixResult) Success() bool {
	return r.ErrorCount == 0 || r.SuccessCount > 0
}

// Message resume a passada em texto para a resposta do disparo manual.
func (r MatrixResult) Message() string {
	if !r.Success() {
		return fmt.Sprintf("Todas as %d combinações falharam", r.ErrorCount)
	}
	return fmt.Sprintf("Matriz concluída: %d sucessos, %d erros, %d repositórios",
		r.SuccessCount, r.ErrorCount, r.Repositories)
}

// RefreshMatrix percorre todas as combinações acompanhadas (linguagens
// configuradas x janelas configuradas), com pausa entre cada uma para
// suavizar o consumo de rate limit. Combinações que falham não abortam a
// passada: entram no contador de erros e a matriz segue.
func (s *RadarService) RefreshMatrix(ctx context.Context) MatrixResult {
	var result MatrixResult

	for _, timeRange := range s.timeRanges {
		// a combinação "todas as linguagens" alimenta o radar agregado
		for _, language := range append([]string{""}, s.languages...) {
			select {
			case <-ctx.Done():
				logger.Log.Warn("matriz de fetch interrompida", zap.Error(ctx.Err()))
				return result
			default:
			}

			count, err := s.Refresh(ctx, language, timeRange)
			if err != nil {
				result.ErrorCount++
				logger.Log.Error("falha em combinação da matriz",
					zap.String("language", language),
					zap.String("time_range", timeRange),
					zap.Error(err))
			} else {
				result.SuccessCount++
				result.Repositories += count
			}

			if s.fetchDelay > 0 {
				select {
				case <-time.After(s.fetchDelay):
				case <-ctx.Done():
					return result
				}
			}
		}
	}

	logger.Log.Info("matriz de fetch concluída",
		zap.Int("success", result.SuccessCount),
		zap.Int("errors", result.ErrorCount),
		zap.Int("repositories", result.Repositories))

	return result
}

// splitLanguages interpreta o parâmetro language da query (CSV).
func splitLanguages(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	languages := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			languages = append(languages, trimmed)
		}
	}
	return languages
}

// canonicalLanguages casa os valores da query com a grafia acompanhada
// pela configuração, de forma que "go" e "Go" filtrem o mesmo agregado.
func (s *RadarService) canonicalLanguages(raw string) []string {
	split := splitLanguages(raw)
	if len(split) == 0 {
		return nil
	}

	languages := make([]string, 0, len(split))
	for _, lang := range split {
		normalized := utils.NormalizeLanguage(lang)
		match := utils.MatchLanguage(normalized, s.languages)
		if match == normalized {
			// fora da lista acompanhada: mantém a grafia do chamador
			match = lang
		}
		languages = append(languages, match)
	}
	return languages
}
