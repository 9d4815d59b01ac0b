package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeLanguage normaliza o nome de uma linguagem para uso como chave de
// dimensão: remove acentos/diacríticos, colapsa espaços internos e converte
// para minúsculas. Exemplo: "Jupyter Notebook" -> "jupyter notebook",
// "C++" -> "c++".
func NormalizeLanguage(language string) string {
	if language == "" {
		return language
	}

	// Remove acentos e diacríticos
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	normalized, _, _ := transform.String(t, language)

	normalized = strings.Join(strings.Fields(normalized), " ")

	return strings.ToLower(normalized)
}

// MatchLanguage encontra, entre as linguagens conhecidas, aquela cuja forma
// normalizada coincide com o valor recebido; se nada casar, devolve o próprio
// valor normalizado.
func MatchLanguage(normalized string, known []string) string {
	for _, lang := range known {
		if NormalizeLanguage(lang) == normalized {
			return lang
		}
	}
	return normalized
}
