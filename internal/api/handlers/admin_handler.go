package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-tech-radar/internal/github"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"github.com/prefeitura-rio/app-tech-radar/internal/services"
)

// AdminHandler expõe a superfície de operação: cache, jobs e disparos manuais
type AdminHandler struct {
	githubClient *github.Client
	scheduler    *services.Scheduler
}

// NewAdminHandler cria um novo handler administrativo
func NewAdminHandler(githubClient *github.Client, scheduler *services.Scheduler) *AdminHandler {
	return &AdminHandler{
		githubClient: githubClient,
		scheduler:    scheduler,
	}
}

// CacheStats godoc
// @Summary Estatísticas do cache em memória
// @Description Snapshot de diagnóstico: entradas ativas, vencidas, hits acumulados e capacidade.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/cache/stats [get]
func (h *AdminHandler) CacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   h.githubClient.CacheStats(),
	})
}

// InvalidateCache godoc
// @Summary Invalidação do cache em memória
// @Description Remove entradas do cache. Sem pattern limpa tudo; com pattern remove as chaves que o contêm (ex: pattern=7d).
// @Tags admin
// @Produce json
// @Param pattern query string false "Substring das chaves a remover"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/cache [delete]
func (h *AdminHandler) InvalidateCache(c *gin.Context) {
	pattern := c.Query("pattern")
	removed := h.githubClient.ClearCache(pattern)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
		"pattern": pattern,
	})
}

// JobStatus godoc
// @Summary Estado dos jobs agendados
// @Description Estado de cada job (fetch e cleanup): se o loop está ativo, última execução, duração e erro.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/jobs [get]
func (h *AdminHandler) JobStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"jobs":    h.scheduler.Status(),
	})
}

// TriggerFetch godoc
// @Summary Disparo manual da matriz de fetch
// @Description Executa imediatamente a passada completa sobre as combinações acompanhadas (linguagens x janelas). Síncrono: responde ao final da passada.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/jobs/fetch [post]
func (h *AdminHandler) TriggerFetch(c *gin.Context) {
	result := h.scheduler.TriggerFetch(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"success": result.Success(),
		"message": result.Message(),
		"result":  result,
	})
}

// TriggerCleanup godoc
// @Summary Disparo manual da limpeza de retenção
// @Description Remove imediatamente os registros persistidos fora da janela de retenção.
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/admin/jobs/cleanup [post]
func (h *AdminHandler) TriggerCleanup(c *gin.Context) {
	removed, err := h.scheduler.TriggerCleanup(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Message: "Erro ao aplicar retenção",
			Reason:  "cleanup_failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"removed": removed,
	})
}
