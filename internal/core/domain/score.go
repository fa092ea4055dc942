// internal/core/domain/score.go
package domain

import "fmt"

// ClassScore es una etiqueta de clase junto a la probabilidad asignada por el clasificador.
// Es un valor inmutable; el orden dentro de un conjunto solo importa para el desempate.
type ClassScore struct {
	// Label etiqueta tal como la entrega el clasificador (e.g. "negative", "LABEL_2")
	Label string `json:"label" yaml:"label"`

	// Probability probabilidad en [0,1]; no se renormaliza
	Probability float64 `json:"probability" yaml:"probability"`
}

// NewClassScore crea un ClassScore.
func NewClassScore(label string, probability float64) ClassScore {
	return ClassScore{Label: label, Probability: probability}
}

// Percent retorna la probabilidad como porcentaje.
func (c ClassScore) Percent() float64 {
	return c.Probability * 100
}

// String retorna "label=92.31%".
func (c ClassScore) String() string {
	return fmt.Sprintf("%s=%.2f%%", c.Label, c.Percent())
}

// Scores es el conjunto de ClassScore producido por una clasificación.
type Scores []ClassScore

// Labels retorna las etiquetas en orden.
func (s Scores) Labels() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Label
	}
	return out
}

// Sum retorna la suma de probabilidades (no necesariamente 1).
func (s Scores) Sum() float64 {
	var total float64
	for _, c := range s {
		total += c.Probability
	}
	return total
}
