package models

import "time"

// RadarQuery são os parâmetros aceitos pelos endpoints de radar.
// A validação usa as tags binding (go-playground/validator via gin).
type RadarQuery struct {
	// Linguagens separadas por vírgula; vazio = todas
	Language string `form:"language"`
	// Janela de busca: 1d, 7d ou 30d
	TimeRange string `form:"timeRange,default=7d" binding:"omitempty,oneof=1d 7d 30d"`
	// Máximo de agregados retornados
	Limit int `form:"limit,default=50" binding:"omitempty,min=1,max=100"`
}

// RefreshRequest é o corpo do POST /radar-data/refresh.
type RefreshRequest struct {
	Language  string `json:"language"`
	TimeRange string `json:"timeRange" binding:"omitempty,oneof=1d 7d 30d" validate:"omitempty,oneof=1d 7d 30d"`
}

// Fontes possíveis de uma resposta do radar.
const (
	SourceCache      = "cache"       // direto do store persistente, dentro do max age
	SourceLive       = "live"        // buscado agora do GitHub
	SourceStaleCache = "stale-cache" // store vencido, servido por degradação
)

// ResponseMeta descreve a proveniência dos dados retornados.
type ResponseMeta struct {
	Source      string    `json:"source"` // cache | live | stale-cache
	LastUpdated time.Time `json:"last_updated"`
	IsFresh     bool      `json:"is_fresh"`
}

// RadarResponse é o envelope do GET /radar-data.
type RadarResponse struct {
	Success         bool            `json:"success"`
	Data            []LanguageTrend `json:"data"`
	Count           int             `json:"count"`
	TimeRange       string          `json:"time_range"`
	Meta            ResponseMeta    `json:"meta"`
	RateLimitStatus *RateLimitInfo  `json:"rate_limit_status,omitempty"`
}

// ErrorResponse é o envelope de falha padrão da API.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"` // machine-readable
}

// PlotlyMarker configura o marcador do scatter polar.
type PlotlyMarker struct {
	Size int `json:"size"`
}

// PlotlyTrace é a série no formato esperado pelo frontend (react-plotly).
type PlotlyTrace struct {
	Type       string       `json:"type"` // scatterpolar
	Mode       string       `json:"mode"` // markers
	R          []int        `json:"r"`
	Theta      []string     `json:"theta"`
	Text       []string     `json:"text"`
	CustomData []string     `json:"customdata"`
	HoverInfo  string       `json:"hoverinfo"`
	Marker     PlotlyMarker `json:"marker"`
	Name       string       `json:"name"`
}
