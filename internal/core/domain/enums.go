// internal/core/domain/enums.go
package domain

import "strings"

// Sentiment es la categoría cerrada que se muestra al usuario.
// Las etiquetas libres del clasificador se normalizan a uno de estos tres valores.
type Sentiment string

const (
	// SentimentNegative etiquetas que contienen "negative"
	SentimentNegative Sentiment = "negative"

	// SentimentNeutral etiquetas que contienen "neutral"
	SentimentNeutral Sentiment = "neutral"

	// SentimentPositive etiquetas que contienen "positive" y cualquier etiqueta no reconocida
	SentimentPositive Sentiment = "positive"
)

// IsValid verifica si el sentimiento es uno de los tres valores conocidos.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentNegative, SentimentNeutral, SentimentPositive:
		return true
	default:
		return false
	}
}

// String retorna la representación string del sentimiento.
func (s Sentiment) String() string {
	return string(s)
}

// Title retorna el nombre para mostrar ("Negative", "Neutral", "Positive").
func (s Sentiment) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Icon retorna el emoji asociado al sentimiento.
func (s Sentiment) Icon() string {
	switch s {
	case SentimentNegative:
		return "😞"
	case SentimentNeutral:
		return "😐"
	case SentimentPositive:
		return "😊"
	default:
		return ""
	}
}

// ConfidenceTier agrupa la probabilidad dominante en cuatro niveles cualitativos.
type ConfidenceTier string

const (
	ConfidenceLow      ConfidenceTier = "low"
	ConfidenceMedium   ConfidenceTier = "medium"
	ConfidenceHigh     ConfidenceTier = "high"
	ConfidenceVeryHigh ConfidenceTier = "very_high"
)

// IsValid verifica si el nivel de confianza es válido.
func (t ConfidenceTier) IsValid() bool {
	switch t {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh, ConfidenceVeryHigh:
		return true
	default:
		return false
	}
}

// String retorna la representación string del nivel.
func (t ConfidenceTier) String() string {
	return string(t)
}

// Label retorna la etiqueta legible ("Low", "Medium", "High", "Very High").
func (t ConfidenceTier) Label() string {
	switch t {
	case ConfidenceLow:
		return "Low"
	case ConfidenceMedium:
		return "Medium"
	case ConfidenceHigh:
		return "High"
	case ConfidenceVeryHigh:
		return "Very High"
	default:
		return "Unknown"
	}
}

// Icon retorna el emoji asociado al nivel.
func (t ConfidenceTier) Icon() string {
	switch t {
	case ConfidenceLow:
		return "⚠️"
	case ConfidenceMedium:
		return "🤔"
	case ConfidenceHigh:
		return "👍"
	case ConfidenceVeryHigh:
		return "🔥"
	default:
		return ""
	}
}
