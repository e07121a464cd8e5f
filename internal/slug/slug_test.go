package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "About Me", "about-me"},
		{"already a slug", "about-me", "about-me"},
		{"punctuation stripped", "Hello, World!", "hello-world"},
		{"accents transliterated", "Résumé", "resume"},
		{"cjk transliterated", "简历", "jian-li"},
		{"collapses whitespace runs", "a   b", "a-b"},
		{"trims leading and trailing hyphens", " - spaced - ", "spaced"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Make(tt.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"lowercase with hyphens", "about-me", true},
		{"digits allowed", "page-2", true},
		{"single word", "about", true},
		{"empty", "", false},
		{"uppercase", "About-Me", false},
		{"spaces", "about me", false},
		{"leading hyphen", "-about", false},
		{"trailing hyphen", "about-", false},
		{"double hyphen", "about--me", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.input))
		})
	}
}
