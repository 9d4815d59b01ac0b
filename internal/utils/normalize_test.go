package utils

import (
	"testing"
)

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Go", "go"},
		{"C++", "c++"},
		{"C#", "c#"},
		{"Jupyter Notebook", "jupyter notebook"},
		{"Objective-C", "objective-c"},
		{"  Rust  ", "rust"},
		{"Visual   Basic", "visual basic"},
		{"Café", "cafe"}, // diacríticos removidos
		{"", ""},
	}

	for _, test := range tests {
		result := NormalizeLanguage(test.input)
		if result != test.expected {
			t.Errorf("NormalizeLanguage(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}

func TestMatchLanguage(t *testing.T) {
	known := []string{"JavaScript", "Python", "TypeScript", "Java", "Go", "Rust", "Jupyter Notebook"}

	tests := []struct {
		input    string
		expected string
	}{
		{"go", "Go"},
		{"javascript", "JavaScript"},
		{"jupyter notebook", "Jupyter Notebook"},
		{"cobol", "cobol"}, // desconhecida: devolve a forma normalizada
	}

	for _, test := range tests {
		result := MatchLanguage(test.input, known)
		if result != test.expected {
			t.Errorf("MatchLanguage(%q) = %q; expected %q", test.input, result, test.expected)
		}
	}
}
