// internal/core/domain/analysis.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Analysis agrupa la entrada, los scores crudos y el veredicto de una ejecución.
// Es lo que reciben los presenters; no se persiste.
type Analysis struct {
	// ID identificador único del análisis
	ID string `json:"id"`

	// Text texto analizado (ya recortado)
	Text string `json:"text"`

	// Classifier nombre del clasificador usado
	Classifier string `json:"classifier"`

	// Scores scores crudos en el orden del clasificador
	Scores Scores `json:"scores"`

	// Verdict veredicto derivado
	Verdict Verdict `json:"verdict"`

	// Duration tiempo total de clasificación e interpretación
	Duration time.Duration `json:"duration_ns"`

	// CreatedAt momento del análisis
	CreatedAt time.Time `json:"created_at"`
}

// NewAnalysis crea un Analysis con ID y timestamp nuevos.
func NewAnalysis(text, classifier string, scores Scores, verdict Verdict) *Analysis {
	return &Analysis{
		ID:         uuid.NewString(),
		Text:       text,
		Classifier: classifier,
		Scores:     scores,
		Verdict:    verdict,
		CreatedAt:  time.Now(),
	}
}
