package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prefeitura-rio/app-tech-radar/internal/logger"
	"github.com/prefeitura-rio/app-tech-radar/internal/store"
	"go.uber.org/zap"
)

// Nomes dos jobs agendados.
const (
	JobFetch   = "fetch"
	JobCleanup = "cleanup"
)

// JobStatus é o snapshot de execução de um job, exposto pela API admin.
// Running reflete se o loop do job está ativo (entre Start e Stop).
type JobStatus struct {
	Name        string    `json:"name"`
	Running     bool      `json:"running"`
	Interval    string    `json:"interval"`
	Runs        int       `json:"runs"`
	LastRunID   string    `json:"last_run_id,omitempty"`
	LastRun     time.Time `json:"last_run,omitempty"`
	LastElapsed string    `json:"last_elapsed,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

// Scheduler mantém os dois loops periódicos do serviço: a matriz de fetch
// (semanal por default) e a limpeza de retenção do store (diária).
type Scheduler struct {
	radar *RadarService
	store store.Store

	fetchInterval   time.Duration
	cleanupInterval time.Duration
	retention       time.Duration

	mu   sync.Mutex
	jobs map[string]*JobStatus

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

func NewScheduler(radar *RadarService, st store.Store, fetchInterval, cleanupInterval, retention time.Duration) *Scheduler {
	return &Scheduler{
		radar:           radar,
		store:           st,
		fetchInterval:   fetchInterval,
		cleanupInterval: cleanupInterval,
		retention:       retention,
		jobs: map[string]*JobStatus{
			JobFetch:   {Name: JobFetch, Interval: fetchInterval.String()},
			JobCleanup: {Name: JobCleanup, Interval: cleanupInterval.String()},
		},
		stopCh: make(chan struct{}),
	}
}

// Start dispara os loops em background. Chamar mais de uma vez é no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(2)
	go s.loop(JobFetch, s.fetchInterval, func(ctx context.Context) error {
		s.radar.RefreshMatrix(ctx)
		return nil
	})
	go s.loop(JobCleanup, s.cleanupInterval, func(ctx context.Context) error {
		removed, err := s.store.PurgeOlderThan(ctx, time.Now().Add(-s.retention))
		if err != nil {
			return err
		}
		logger.Log.Info("retenção aplicada", zap.Int("removed", removed))
		return nil
	})

	logger.Log.Info("scheduler iniciado",
		zap.Duration("fetch_interval", s.fetchInterval),
		zap.Duration("cleanup_interval", s.cleanupInterval))
}

// Stop encerra os loops e aguarda a parada. Execuções em andamento recebem
// cancelamento via contexto.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Log.Info("scheduler encerrado")
}

func (s *Scheduler) loop(name string, interval time.Duration, run func(context.Context) error) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		<-s.stopCh
		cancel()
	}()

	for {
		select {
		case <-ticker.C:
			s.runJob(ctx, name, run)
		case <-s.stopCh:
			return
		}
	}
}

// runJob executa o job registrando id de execução, duração e erro.
func (s *Scheduler) runJob(ctx context.Context, name string, run func(context.Context) error) {
	runID := uuid.NewString()
	start := time.Now()

	logger.Log.Info("job iniciado", zap.String("job", name), zap.String("run_id", runID))
	err := run(ctx)
	elapsed := time.Since(start)

	s.mu.Lock()
	status := s.jobs[name]
	status.Runs++
	status.LastRunID = runID
	status.LastRun = start
	status.LastElapsed = elapsed.String()
	if err != nil {
		status.LastError = err.Error()
	} else {
		status.LastError = ""
	}
	s.mu.Unlock()

	if err != nil {
		logger.Log.Error("job falhou",
			zap.String("job", name), zap.String("run_id", runID), zap.Error(err))
		return
	}
	logger.Log.Info("job concluído",
		zap.String("job", name), zap.String("run_id", runID), zap.Duration("elapsed", elapsed))
}

// TriggerFetch executa a matriz de fetch imediatamente, fora do ticker.
// Usado pelo endpoint admin e pelo warmup de boot.
func (s *Scheduler) TriggerFetch(ctx context.Context) MatrixResult {
	var result MatrixResult
	s.runJob(ctx, JobFetch, func(ctx context.Context) error {
		result = s.radar.RefreshMatrix(ctx)
		return nil
	})
	return result
}

// TriggerCleanup aplica a retenção imediatamente.
func (s *Scheduler) TriggerCleanup(ctx context.Context) (int, error) {
	var removed int
	var runErr error
	s.runJob(ctx, JobCleanup, func(ctx context.Context) error {
		removed, runErr = s.store.PurgeOlderThan(ctx, time.Now().Add(-s.retention))
		return runErr
	})
	return removed, runErr
}

// Status retorna o snapshot de todos os jobs.
func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, name := range []string{JobFetch, JobCleanup} {
		status := *s.jobs[name]
		status.Running = s.started
		statuses = append(statuses, status)
	}
	return statuses
}
