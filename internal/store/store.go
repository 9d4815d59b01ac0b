// Package store persiste tendências agregadas e repositórios brutos no
// Typesense, servindo como camada durável abaixo do cache em memória.
package store

import (
	"context"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/models"
)

// TrendFilter restringe a consulta de tendências persistidas.
type TrendFilter struct {
	// TimeRange é obrigatório (1d, 7d ou 30d).
	TimeRange string

	// Languages filtra por linguagens específicas. Vazio retorna todas.
	Languages []string

	// Limit limita o número de resultados. Zero usa o default do store.
	Limit int
}

// Store é o contrato de persistência consumido pelos serviços e jobs.
type Store interface {
	// UpsertTrends grava tendências agregadas, substituindo documentos
	// existentes do mesmo par (linguagem, time range).
	UpsertTrends(ctx context.Context, trends []models.LanguageTrend) error

	// FindTrends retorna tendências ordenadas por trending_score
	// decrescente.
	FindTrends(ctx context.Context, filter TrendFilter) ([]models.LanguageTrend, error)

	// LatestUpdate retorna o last_updated mais recente da janela, ou zero
	// quando não há registros.
	LatestUpdate(ctx context.Context, timeRange string) (time.Time, error)

	// UpsertRepositories grava o resultado bruto de um fetch.
	UpsertRepositories(ctx context.Context, timeRange string, repos []models.Repository) error

	// PurgeOlderThan remove tendências e repositórios não atualizados
	// desde o cutoff. Retorna o total de documentos removidos.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// Health verifica a disponibilidade do backend de persistência.
	Health(ctx context.Context) error
}
