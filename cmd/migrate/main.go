// Comando de preparação do Typesense: cria as coleções do radar quando
// ainda não existem e, opcionalmente, aplica a retenção imediatamente.
//
// Uso:
//
//	migrate            cria as coleções (idempotente)
//	migrate -purge     cria as coleções e remove registros fora da retenção
package main

import (
	"context"
	"flag"
	"time"

	"github.com/prefeitura-rio/app-tech-radar/internal/config"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/store"
	"go.uber.org/zap"
)

var purge = flag.Bool("purge", false, "Aplica a retenção após criar as coleções")

func main() {
	flag.Parse()

	cfg := config.LoadConfig()
	logger.InitLogger(cfg.AppEnv)
	defer logger.Sync()

	st := store.NewClient(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := st.EnsureCollections(ctx); err != nil {
		logger.Log.Fatal("erro ao criar coleções", zap.Error(err))
	}
	logger.Log.Info("coleções verificadas",
		zap.String("trends", store.TrendsCollection),
		zap.String("repos", store.ReposCollection))

	if *purge {
		removed, err := st.PurgeOlderThan(ctx, time.Now().Add(-cfg.Retention))
		if err != nil {
			logger.Log.Fatal("erro ao aplicar retenção", zap.Error(err))
		}
		logger.Log.Info("retenção aplicada", zap.Int("removed", removed))
	}
}
