// internal/core/usecases/messages.go
package usecases

import (
	"sentimeter/internal/core/domain"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/ui"
)

// UserMessage traduce un error de análisis a un mensaje para el usuario final.
// Los front ends lo usan en vez de mostrar la cadena de errores completa.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyText):
		return ui.EmptyTextHint
	case errors.Is(err, domain.ErrTextTooLong):
		return "The text is too long to analyze. Shorten it and try again."
	case errors.Is(err, domain.ErrUnrecognizedLabel):
		return "The classifier returned a label that is not a known sentiment."
	case errors.IsInvalidInput(err):
		return "The input could not be analyzed: " + err.Error()
	case errors.IsRateLimit(err):
		return "Too many requests to the sentiment model. Try again shortly."
	case errors.IsUnauthorized(err):
		return "The sentiment model rejected the configured access token."
	case errors.IsTimeout(err):
		return "The sentiment model did not answer in time."
	case errors.IsCanceled(err):
		return "The analysis was canceled."
	case errors.IsServiceUnavailable(err):
		return "The sentiment model is unavailable right now: " + err.Error()
	case errors.IsInvalidResponse(err):
		return "The sentiment model returned an unusable response."
	default:
		return "Analysis failed: " + err.Error()
	}
}
