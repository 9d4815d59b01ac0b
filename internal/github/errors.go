package github

import "errors"

var (
	// ErrUpstreamUnavailable indica falha na API do GitHub sem nenhum dado
	// em cache (fresco ou vencido) para degradar.
	ErrUpstreamUnavailable = errors.New("API do GitHub indisponível e sem dados em cache")

	// ErrRateLimited indica que a espera pelo reset do rate limit foi
	// interrompida pelo contexto do chamador.
	ErrRateLimited = errors.New("limite de requisições do GitHub atingido")

	// ErrMalformedPayload indica resposta do GitHub sem os campos esperados.
	ErrMalformedPayload = errors.New("resposta do GitHub em formato inesperado")
)
