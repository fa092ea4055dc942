// internal/platform/resilience/guarded_classifier.go
package resilience

import (
	"context"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/logx"
)

// GuardedClassifier envuelve un Classifier con un circuit breaker.
// Los reintentos viven en el cliente HTTP; aquí solo se corta el paso
// cuando el servicio falla de forma sostenida.
type GuardedClassifier struct {
	classifier     ports.Classifier
	circuitBreaker *CircuitBreaker
	logger         logx.Logger
}

// NewGuardedClassifier crea un nuevo GuardedClassifier. Con cb nil las
// llamadas pasan directamente.
func NewGuardedClassifier(classifier ports.Classifier, cb *CircuitBreaker, logger logx.Logger) *GuardedClassifier {
	return &GuardedClassifier{
		classifier:     classifier,
		circuitBreaker: cb,
		logger:         logger.With("component", "guarded-classifier", "classifier", classifier.Name()),
	}
}

// Name retorna el nombre del clasificador subyacente.
func (g *GuardedClassifier) Name() string {
	return g.classifier.Name()
}

// Classify ejecuta el clasificador si el circuito lo permite.
func (g *GuardedClassifier) Classify(ctx context.Context, text string) ([]domain.ClassScore, error) {
	if g.circuitBreaker == nil {
		return g.classifier.Classify(ctx, text)
	}

	var scores []domain.ClassScore
	err := g.circuitBreaker.Execute(func() error {
		var err error
		scores, err = g.classifier.Classify(ctx, text)
		return err
	})
	if err != nil {
		if g.circuitBreaker.State() != StateClosed {
			g.logger.Warn("classifier call rejected or failed with breaker not closed",
				"state", g.circuitBreaker.State().String(),
				"error", err.Error(),
			)
		}
		return nil, err
	}

	return scores, nil
}

// CircuitBreaker retorna el circuit breaker (útil para testing/monitoring).
func (g *GuardedClassifier) CircuitBreaker() *CircuitBreaker {
	return g.circuitBreaker
}
