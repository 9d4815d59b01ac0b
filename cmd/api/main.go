package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/prefeitura-rio/app-tech-radar/docs"
	"github.com/prefeitura-rio/app-tech-radar/internal/api/routes"
	"github.com/prefeitura-rio/app-tech-radar/internal/cache"
	"github.com/prefeitura-rio/app-tech-radar/internal/config"
	"github.com/prefeitura-rio/app-tech-radar/internal/github"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/observability"
	"github.com/prefeitura-rio/app-tech-radar/internal/services"
	"github.com/prefeitura-rio/app-tech-radar/internal/store"
	"go.uber.org/zap"
)

// @title           Tech Radar API
// @version         1.0
// @description     API de tendências de repositórios do GitHub com cache em camadas (memória + Typesense) e jobs periódicos de atualização
// @termsOfService  http://swagger.io/terms/

// @contact.name   Prefeitura do Rio de Janeiro
// @contact.url    https://prefeitura.rio
// @contact.email  contato@prefeitura.rio

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      services.staging.app.dados.rio/app-tech-radar

func main() {
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.AppEnv)
	defer logger.Sync()

	observability.InitTracer(cfg)
	defer observability.ShutdownTracer()

	st := store.NewClient(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := st.EnsureCollections(ctx); err != nil {
		cancel()
		logger.Log.Fatal("erro ao preparar coleções do Typesense", zap.Error(err))
	}
	cancel()

	memCache := cache.NewTTLCache(cfg.CacheMaxSize)
	cleanupTicker := memCache.StartCleanupRoutine(cfg.CacheTTL)
	defer cleanupTicker.Stop()

	githubClient := github.NewClient(github.Options{
		BaseURL:            cfg.GitHubAPIURL,
		Token:              cfg.GitHubToken,
		Timeout:            cfg.GitHubTimeout,
		CacheTTL:           cfg.CacheTTL,
		RateLimitThreshold: cfg.RateLimitThreshold,
	}, memCache)

	radarService := services.NewRadarService(st, githubClient, cfg)
	scheduler := services.NewScheduler(radarService, st, cfg.FetchInterval, cfg.CleanupInterval, cfg.Retention)
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.WarmupOnStart {
		go func() {
			logger.Log.Info("warmup inicial disparado")
			scheduler.TriggerFetch(context.Background())
		}()
	}

	r := routes.SetupRouter(cfg, routes.Dependencies{
		RadarService: radarService,
		GitHubClient: githubClient,
		Scheduler:    scheduler,
		Store:        st,
	})

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Log.Info("servidor iniciado", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("erro ao iniciar servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("sinal de encerramento recebido")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("erro no shutdown do servidor", zap.Error(err))
	}
}
