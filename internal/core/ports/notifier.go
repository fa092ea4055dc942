// internal/core/ports/notifier.go
package ports

import (
	"sentimeter/internal/core/domain"
)

// AnalysisObserver recibe el resultado de cada análisis.
// Implementa el patrón Observer para desacoplar el caso de uso de
// métricas, auditoría en logs, etc. Las implementaciones no deben bloquear.
type AnalysisObserver interface {
	// OnAnalysis se invoca tras un análisis exitoso
	OnAnalysis(analysis *domain.Analysis)

	// OnFailure se invoca cuando el análisis falla en cualquier etapa
	OnFailure(stage Stage, err error)
}

// Stage identifica la etapa en la que falló un análisis.
type Stage string

const (
	StageValidate  Stage = "validate"
	StageClassify  Stage = "classify"
	StageInterpret Stage = "interpret"
)

// String retorna la representación string de la etapa.
func (s Stage) String() string {
	return string(s)
}
