// internal/core/domain/errors.go
package domain

import (
	"sentimeter/internal/platform/errors"
)

// Errores de dominio. Los de entrada envuelven errors.ErrInvalidInput para que
// errors.IsInvalidInput funcione en cualquier capa.
var (
	// Input errors
	ErrEmptyScores = errors.Wrap(errors.ErrInvalidInput, "score set is empty")
	ErrEmptyText   = errors.Wrap(errors.ErrInvalidInput, "text is empty")
	ErrTextTooLong = errors.Wrap(errors.ErrInvalidInput, "text is too long")

	// Interpretation errors
	ErrUnrecognizedLabel = errors.New("unrecognized class label")
)
