// internal/core/ports/analyzer.go
package ports

import (
	"context"

	"sentimeter/internal/core/domain"
)

// Analyzer es el port de entrada que usan los front ends (CLI, web).
// Recibe texto crudo y retorna el análisis completo o un error clasificable
// con el paquete errors.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*domain.Analysis, error)
}
