// internal/core/usecases/session.go
package usecases

import (
	"context"

	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/ui"
	"sentimeter/internal/platform/validator"
)

// AnotherQuestion pregunta tras cada análisis del modo interactivo.
const AnotherQuestion = "Analyze another text?"

// Prompter abstrae la entrada interactiva (terminal o tests).
type Prompter interface {
	ReadText(ctx context.Context) (string, error)
	Confirm(ctx context.Context, question string) (bool, error)
}

// SessionStats resume una sesión interactiva.
type SessionStats struct {
	Analyses int
	Failures int
	Blank    int
}

// Session ejecuta el bucle interactivo: pedir texto, analizar, mostrar, repetir.
type Session struct {
	analyzer  ports.Analyzer
	prompter  Prompter
	presenter ui.Presenter
	logger    logx.Logger
}

// NewSession crea una sesión interactiva.
func NewSession(analyzer ports.Analyzer, prompter Prompter, presenter ui.Presenter, logger logx.Logger) *Session {
	if presenter == nil {
		presenter = ui.NewNoopPresenter()
	}
	if logger == nil {
		logger = logx.New()
	}
	return &Session{
		analyzer:  analyzer,
		prompter:  prompter,
		presenter: presenter,
		logger:    logger.With("component", "session"),
	}
}

// Run repite el ciclo hasta que el usuario no quiera seguir, interrumpa el
// prompt o se cancele ctx. Esas tres salidas no son errores.
// Un análisis fallido se muestra y la sesión continúa.
func (s *Session) Run(ctx context.Context) (SessionStats, error) {
	var stats SessionStats

	for {
		if ctx.Err() != nil {
			return stats, nil
		}

		text, err := s.prompter.ReadText(ctx)
		if err != nil {
			if endOfSession(err) {
				return stats, nil
			}
			return stats, errors.Wrap(err, "prompt")
		}

		if validator.IsEmpty(text) {
			stats.Blank++
			s.presenter.Warning(ui.EmptyTextHint)
			continue
		}

		s.presenter.StartAnalysis(text)
		analysis, err := s.analyzer.Analyze(ctx, text)
		if err != nil {
			if errors.IsCanceled(err) && ctx.Err() != nil {
				return stats, nil
			}
			stats.Failures++
			s.presenter.Error(UserMessage(err))
		} else {
			stats.Analyses++
			s.presenter.ShowAnalysis(analysis)
		}

		again, err := s.prompter.Confirm(ctx, AnotherQuestion)
		if err != nil {
			if endOfSession(err) {
				return stats, nil
			}
			return stats, errors.Wrap(err, "prompt")
		}
		if !again {
			s.logger.Debug("session finished", "analyses", stats.Analyses, "failures", stats.Failures)
			return stats, nil
		}
	}
}

func endOfSession(err error) bool {
	return errors.Is(err, ui.ErrInterrupted) || errors.IsCanceled(err)
}
