package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prefeitura-rio/app-tech-radar/internal/github"
	"github.com/prefeitura-rio/app-tech-radar/internal/models"
	"github.com/prefeitura-rio/app-tech-radar/internal/services"
)

// RadarHandler gerencia os endpoints de dados do radar
type RadarHandler struct {
	radarService *services.RadarService
	fetcher      github.Fetcher
	validator    *validator.Validate
}

// NewRadarHandler cria um novo handler de radar
func NewRadarHandler(radarService *services.RadarService, fetcher github.Fetcher) *RadarHandler {
	return &RadarHandler{
		radarService: radarService,
		fetcher:      fetcher,
		validator:    validator.New(),
	}
}

// GetRadarData godoc
// @Summary Tendências de linguagens agregadas
// @Description Retorna os agregados por linguagem da janela pedida, ordenados por trending score. Serve do store persistente quando os dados estão dentro do max age; caso contrário dispara uma atualização live no GitHub. Se o GitHub estiver indisponível e existirem dados antigos, responde com eles (meta.source = stale-cache).
// @Tags radar
// @Produce json
// @Param language query string false "Linguagens separadas por vírgula (ex: Go,Rust)"
// @Param timeRange query string false "Janela de busca" Enums(1d, 7d, 30d) default(7d)
// @Param limit query int false "Máximo de linguagens retornadas" minimum(1) maximum(100) default(50)
// @Success 200 {object} models.RadarResponse
// @Failure 400 {object} models.ErrorResponse "Parâmetros inválidos"
// @Failure 503 {object} models.ErrorResponse "GitHub indisponível e sem dados persistidos"
// @Router /api/v1/radar-data [get]
func (h *RadarHandler) GetRadarData(c *gin.Context) {
	var query models.RadarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Parâmetros inválidos: " + err.Error(),
			Reason:  "invalid_query",
		})
		return
	}

	resp, err := h.radarService.GetRadarData(c.Request.Context(), query)
	if err != nil {
		c.JSON(statusForFetchError(err), models.ErrorResponse{
			Message: "Erro ao buscar dados do radar",
			Reason:  reasonForFetchError(err),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefreshRadarData godoc
// @Summary Atualização manual do radar
// @Description Dispara imediatamente a busca e reprocessamento de uma combinação (linguagem, janela), ignorando o estado de frescor do store.
// @Tags radar
// @Accept json
// @Produce json
// @Param request body models.RefreshRequest false "Combinação a atualizar (vazio = todas as linguagens, janela 7d)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse "Corpo inválido"
// @Failure 503 {object} models.ErrorResponse "GitHub indisponível"
// @Router /api/v1/radar-data/refresh [post]
func (h *RadarHandler) RefreshRadarData(c *gin.Context) {
	var req models.RefreshRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "Corpo inválido: " + err.Error(),
				Reason:  "invalid_body",
			})
			return
		}
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Validação falhou: " + err.Error(),
			Reason:  "invalid_body",
		})
		return
	}

	count, err := h.radarService.Refresh(c.Request.Context(), req.Language, req.TimeRange)
	if err != nil {
		c.JSON(statusForFetchError(err), models.ErrorResponse{
			Message: "Erro ao atualizar dados do radar",
			Reason:  reasonForFetchError(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"repositories": count,
		"language":     req.Language,
		"time_range":   models.NormalizeTimeRange(req.TimeRange),
	})
}

// GetPlotData godoc
// @Summary Dados do radar no formato Plotly
// @Description Mesma resolução de frescor do GET /radar-data, mas com o resultado transformado em uma série scatterpolar pronta para o react-plotly do frontend.
// @Tags radar
// @Produce json
// @Param language query string false "Linguagens separadas por vírgula"
// @Param timeRange query string false "Janela de busca" Enums(1d, 7d, 30d) default(7d)
// @Param limit query int false "Máximo de linguagens no gráfico" minimum(1) maximum(100) default(50)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/trending/plot [get]
func (h *RadarHandler) GetPlotData(c *gin.Context) {
	var query models.RadarQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Message: "Parâmetros inválidos: " + err.Error(),
			Reason:  "invalid_query",
		})
		return
	}

	resp, err := h.radarService.GetRadarData(c.Request.Context(), query)
	if err != nil {
		c.JSON(statusForFetchError(err), models.ErrorResponse{
			Message: "Erro ao montar dados do gráfico",
			Reason:  reasonForFetchError(err),
		})
		return
	}

	trace := services.BuildRadarTrace(resp.Data, resp.TimeRange)
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       []models.PlotlyTrace{trace},
		"time_range": resp.TimeRange,
		"meta":       resp.Meta,
	})
}

// GetRateLimit godoc
// @Summary Estado do rate limit do GitHub
// @Description Último estado de rate limit observado nos headers da API do GitHub. Nulo antes da primeira chamada.
// @Tags radar
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/rate-limit [get]
func (h *RadarHandler) GetRateLimit(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"rate_limit": h.fetcher.RateLimitStatus(),
	})
}

// statusForFetchError mapeia os erros sentinela do fetcher para status HTTP.
func statusForFetchError(err error) int {
	switch {
	case errors.Is(err, github.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, github.ErrUpstreamUnavailable), errors.Is(err, github.ErrMalformedPayload):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func reasonForFetchError(err error) string {
	switch {
	case errors.Is(err, github.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, github.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, github.ErrMalformedPayload):
		return "malformed_payload"
	default:
		return "internal_error"
	}
}
