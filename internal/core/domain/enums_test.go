// internal/core/domain/enums_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentiment_String(t *testing.T) {
	tests := []struct {
		sentiment Sentiment
		expected  string
		title     string
		icon      string
	}{
		{SentimentNegative, "negative", "Negative", "😞"},
		{SentimentNeutral, "neutral", "Neutral", "😐"},
		{SentimentPositive, "positive", "Positive", "😊"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sentiment.String())
			assert.Equal(t, tt.title, tt.sentiment.Title())
			assert.Equal(t, tt.icon, tt.sentiment.Icon())
			assert.True(t, tt.sentiment.IsValid())
		})
	}
}

func TestSentiment_IsValid(t *testing.T) {
	assert.False(t, Sentiment("").IsValid())
	assert.False(t, Sentiment("mixed").IsValid())
	assert.False(t, Sentiment("Positive").IsValid(), "values are lowercase")
	assert.Equal(t, "", Sentiment("").Title())
}

func TestConfidenceTier_Label(t *testing.T) {
	tests := []struct {
		tier  ConfidenceTier
		label string
		icon  string
	}{
		{ConfidenceLow, "Low", "⚠️"},
		{ConfidenceMedium, "Medium", "🤔"},
		{ConfidenceHigh, "High", "👍"},
		{ConfidenceVeryHigh, "Very High", "🔥"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.label, tt.tier.Label())
			assert.Equal(t, tt.icon, tt.tier.Icon())
			assert.True(t, tt.tier.IsValid())
		})
	}

	assert.Equal(t, "Unknown", ConfidenceTier("extreme").Label())
	assert.False(t, ConfidenceTier("extreme").IsValid())
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		expected    ConfidenceTier
	}{
		{"certain", 1.0, ConfidenceVeryHigh},
		{"just above 0.90", 0.9000001, ConfidenceVeryHigh},
		{"exactly 0.90 is not very high", 0.90, ConfidenceHigh},
		{"just above 0.75", 0.7500001, ConfidenceHigh},
		{"exactly 0.75", 0.75, ConfidenceMedium},
		{"just above 0.50", 0.50001, ConfidenceMedium},
		{"exactly 0.50 is low", 0.5, ConfidenceLow},
		{"zero", 0, ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TierFor(tt.probability))
		})
	}
}
