// internal/core/domain/verdict.go
package domain

import (
	"fmt"
	"strings"
)

// Star rating bounds and glyphs.
const (
	MinStars = 1
	MaxStars = 5

	StarFilled = "⭐"
	StarEmpty  = "☆"
)

// Verdict es el resultado derivado de un conjunto de ClassScore.
// Se crea por cada análisis y se descarta tras mostrarse.
type Verdict struct {
	// Label etiqueta cruda de la clase dominante
	Label string `json:"label"`

	// Sentiment categoría normalizada
	Sentiment Sentiment `json:"sentiment"`

	// Icon emoji del sentimiento
	Icon string `json:"icon"`

	// Stars valoración en [1,5]
	Stars int `json:"stars"`

	// Probability probabilidad de la clase dominante
	Probability float64 `json:"probability"`

	// ConfidencePercent Probability * 100
	ConfidencePercent float64 `json:"confidence_percent"`

	// Tier nivel cualitativo de confianza
	Tier ConfidenceTier `json:"confidence_tier"`
}

// StarDisplay retorna la representación de 5 posiciones de la valoración.
func (v Verdict) StarDisplay() string {
	return RenderStars(v.Stars)
}

// DisplaySentiment retorna "Positive 😊".
func (v Verdict) DisplaySentiment() string {
	return fmt.Sprintf("%s %s", v.Sentiment.Title(), v.Icon)
}

// DisplayConfidence retorna "92.31% (Very High 🔥)".
func (v Verdict) DisplayConfidence() string {
	return fmt.Sprintf("%.2f%% (%s %s)", v.ConfidencePercent, v.Tier.Label(), v.Tier.Icon())
}

// RenderStars retorna n estrellas llenas seguidas de (5-n) vacías.
// n se acota a [0,5] para que el ancho sea siempre 5.
func RenderStars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > MaxStars {
		n = MaxStars
	}
	return strings.Repeat(StarFilled, n) + strings.Repeat(StarEmpty, MaxStars-n)
}
