// internal/core/ports/classifier.go
package ports

import (
	"context"

	"sentimeter/internal/core/domain"
)

// Classifier es el port hacia el modelo de clasificación de sentimiento.
// La inferencia es externa (API HTTP, proceso local, etc.); el núcleo solo
// consume los scores por clase.
type Classifier interface {
	// Name retorna un identificador legible (e.g. "huggingface/cardiffnlp/...")
	Name() string

	// Classify retorna un score por cada clase soportada, con probabilidades en [0,1].
	// Un clasificador correcto nunca retorna un conjunto vacío sin error.
	Classify(ctx context.Context, text string) ([]domain.ClassScore, error)
}

// ClassifierFunc adapta una función al port Classifier.
type ClassifierFunc func(ctx context.Context, text string) ([]domain.ClassScore, error)

// Name retorna "func".
func (f ClassifierFunc) Name() string { return "func" }

// Classify invoca la función.
func (f ClassifierFunc) Classify(ctx context.Context, text string) ([]domain.ClassScore, error) {
	return f(ctx, text)
}
