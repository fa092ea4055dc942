// internal/core/domain/confidence.go
package domain

// Umbrales de confianza sobre la probabilidad de la clase dominante.
// Todos los límites son estrictos (p > umbral).
const (
	// VeryHighConfidenceThreshold p > 0.90 → Very High
	VeryHighConfidenceThreshold float64 = 0.90

	// HighConfidenceThreshold p > 0.75 → High
	HighConfidenceThreshold float64 = 0.75

	// MediumConfidenceThreshold p > 0.50 → Medium; cualquier otro valor → Low
	MediumConfidenceThreshold float64 = 0.50
)

// TierFor retorna el nivel de confianza para una probabilidad.
func TierFor(probability float64) ConfidenceTier {
	switch {
	case probability > VeryHighConfidenceThreshold:
		return ConfidenceVeryHigh
	case probability > HighConfidenceThreshold:
		return ConfidenceHigh
	case probability > MediumConfidenceThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
