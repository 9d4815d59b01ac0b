package models

import "time"

// Repository representa um repositório retornado pela API de busca do GitHub.
// As tags json seguem os nomes de campo da API (search/repositories).
// Campos opcionais (description, language) podem vir nulos e ficam com o
// valor zero; o tratamento de defaults acontece na normalização do fetcher.
type Repository struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	URL         string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Topics      []string  `json:"topics,omitempty"`
}

// RateLimitInfo espelha os headers de rate limit da API do GitHub
// (x-ratelimit-limit, x-ratelimit-remaining, x-ratelimit-reset).
type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset"` // epoch em segundos
}

// ResetAt retorna o instante em que a janela de rate limit reinicia.
func (r RateLimitInfo) ResetAt() time.Time {
	return time.Unix(r.Reset, 0)
}
