// internal/platform/validator/validator_test.go
package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty", "", true},
		{"spaces", "   ", true},
		{"tabs and newlines", "\t\n\r\n", true},
		{"text", "I love this", false},
		{"padded text", "  ok  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEmpty(tt.input))
		})
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims", "  great movie \n", "great movie"},
		{"crlf", "line one\r\nline two", "line one\nline two"},
		{"bare cr", "a\rb", "a\nb"},
		{"drops control chars", "bad\x00\x07 day", "bad day"},
		{"keeps tabs", "a\tb", "a\tb"},
		{"nfc composition", "cafe\u0301", "caf\u00e9"},
		{"only whitespace", " \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestMaxRunes(t *testing.T) {
	assert.True(t, MaxRunes("😊😊😊", 3), "emoji count as one rune each")
	assert.False(t, MaxRunes("😊😊😊😊", 3))
	assert.True(t, MaxRunes(strings.Repeat("x", 10000), 0), "zero disables the limit")
	assert.Equal(t, 4, RuneCount("ñañá"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestIsModelID(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"cardiffnlp/twitter-roberta-base-sentiment-latest", true},
		{"distilbert-base-uncased-finetuned-sst-2-english", true},
		{"nlptown/bert-base-multilingual-uncased-sentiment", true},
		{"", false},
		{"owner/", false},
		{"/name", false},
		{"a/b/c", false},
		{"with space/model", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsModelID(tt.input))
		})
	}
}

func TestIsHTTPURL(t *testing.T) {
	assert.True(t, IsHTTPURL("https://router.huggingface.co/hf-inference/models/x"))
	assert.True(t, IsHTTPURL("http://127.0.0.1:8080"))
	assert.False(t, IsHTTPURL("ftp://example.com"))
	assert.False(t, IsHTTPURL("example.com/path"))
	assert.False(t, IsHTTPURL(""))
}

func TestIsListenAddr(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{":8080", true},
		{"127.0.0.1:8501", true},
		{"localhost:80", true},
		{"[::1]:9000", true},
		{"8080", false},
		{":0", false},
		{":70000", false},
		{"bad_host:80", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsListenAddr(tt.input))
		})
	}
}
