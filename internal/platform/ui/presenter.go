// internal/platform/ui/presenter.go
package ui

import (
	"io"
	"os"

	"sentimeter/internal/core/domain"
)

// Mode define el modo de ejecución que se presenta
type Mode string

const (
	ModeSingle      Mode = "single"      // Un análisis y salir
	ModeInteractive Mode = "interactive" // Bucle de prompts en la terminal
	ModeServe       Mode = "serve"       // Servidor web
)

// Presenter define la interfaz para presentar los resultados del análisis
// de sentimiento de manera visual o como líneas para scripts.
type Presenter interface {
	// Start inicia la presentación con información de la sesión
	Start(info SessionInfo)

	// StartAnalysis notifica que un texto entra en clasificación
	StartAnalysis(text string)

	// ShowAnalysis muestra el veredicto y la distribución de scores
	ShowAnalysis(analysis *domain.Analysis)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Close limpia recursos del presenter
	Close() error
}

// SessionInfo contiene información inicial de la sesión
type SessionInfo struct {
	Classifier string
	Mode       Mode
	Strict     bool
	Version    string
}

// Options agrupa lo necesario para construir un Presenter con New.
type Options struct {
	// Format "pretty", "json" o "text"
	Format string

	// Quiet suprime toda salida
	Quiet bool

	// Writer destino (default os.Stdout)
	Writer io.Writer

	// Interactive habilita el spinner mientras se clasifica
	Interactive bool
}

// New crea el Presenter que corresponde al formato configurado.
// Un formato desconocido cae en pretty; config.Validate ya lo rechaza antes.
func New(opts Options) Presenter {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	switch {
	case opts.Quiet:
		return NewNoopPresenter()
	case opts.Format == string(LogFormatJSON):
		return NewRawPresenter(w, LogFormatJSON)
	case opts.Format == string(LogFormatText):
		return NewRawPresenter(w, LogFormatText)
	default:
		return NewPTermPresenter(PTermOptions{
			Writer:  w,
			Spinner: opts.Interactive,
		})
	}
}
