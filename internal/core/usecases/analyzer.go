// internal/core/usecases/analyzer.go
package usecases

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/interpreter"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
	"sentimeter/internal/platform/logx"
	"sentimeter/internal/platform/validator"
)

// DefaultMaxRunes límite de caracteres cuando no se configura otro.
const DefaultMaxRunes = 2000

// Analyzer coordina un análisis completo: validación del texto, llamada al
// clasificador e interpretación de los scores.
// Solo guarda colaboradores inmutables, por lo que es seguro para uso concurrente.
type Analyzer struct {
	classifier  ports.Classifier
	interpreter *interpreter.Interpreter
	observers   []ports.AnalysisObserver
	logger      logx.Logger

	maxRunes int
	timeout  time.Duration
	clock    clockwork.Clock
}

var _ ports.Analyzer = (*Analyzer)(nil)

// AnalyzerOptions configura el Analyzer.
type AnalyzerOptions struct {
	// Classifier es obligatorio
	Classifier ports.Classifier

	// Interpreter default: interpreter.New() (modo tolerante)
	Interpreter *interpreter.Interpreter

	Observers []ports.AnalysisObserver
	Logger    logx.Logger

	// MaxRunes límite de caracteres tras normalizar (default DefaultMaxRunes)
	MaxRunes int

	// Timeout por análisis; 0 usa solo el deadline del contexto
	Timeout time.Duration

	// Clock mide la duración de cada análisis (default reloj real)
	Clock clockwork.Clock
}

// NewAnalyzer crea una nueva instancia del caso de uso.
func NewAnalyzer(opts AnalyzerOptions) *Analyzer {
	if opts.Interpreter == nil {
		opts.Interpreter = interpreter.New()
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.MaxRunes <= 0 {
		opts.MaxRunes = DefaultMaxRunes
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Analyzer{
		classifier:  opts.Classifier,
		interpreter: opts.Interpreter,
		observers:   opts.Observers,
		logger:      opts.Logger.With("component", "analyzer"),
		maxRunes:    opts.MaxRunes,
		timeout:     opts.Timeout,
		clock:       opts.Clock,
	}
}

// ClassifierName retorna el nombre del clasificador inyectado.
func (a *Analyzer) ClassifierName() string {
	return a.classifier.Name()
}

// Strict indica si el intérprete rechaza etiquetas desconocidas.
func (a *Analyzer) Strict() bool {
	return a.interpreter.Strict()
}

// Analyze normaliza el texto, lo clasifica e interpreta el resultado.
// Texto en blanco o demasiado largo falla antes de llamar al clasificador.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	text = validator.NormalizeText(text)

	if validator.IsEmpty(text) {
		return nil, a.fail(ports.StageValidate, domain.ErrEmptyText)
	}
	if !validator.MaxRunes(text, a.maxRunes) {
		return nil, a.fail(ports.StageValidate,
			errors.Wrapf(domain.ErrTextTooLong, "%d characters, limit is %d", validator.RuneCount(text), a.maxRunes))
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := a.clock.Now()
	a.logger.Debug("classifying text", "classifier", a.classifier.Name(), "chars", validator.RuneCount(text))

	scores, err := a.classifier.Classify(ctx, text)
	if err != nil {
		return nil, a.fail(ports.StageClassify, errors.Wrap(err, "classify"))
	}

	verdict, err := a.interpreter.Interpret(scores)
	if err != nil {
		return nil, a.fail(ports.StageInterpret, errors.Wrap(err, "interpret"))
	}

	analysis := domain.NewAnalysis(text, a.classifier.Name(), scores, verdict)
	analysis.Duration = a.clock.Since(start)

	a.logger.Info("analysis complete",
		"id", analysis.ID,
		"sentiment", verdict.Sentiment.String(),
		"label", verdict.Label,
		"stars", verdict.Stars,
		"confidence", verdict.ConfidencePercent,
		"tier", verdict.Tier.String(),
		"duration_ms", analysis.Duration.Milliseconds(),
	)

	for _, o := range a.observers {
		o.OnAnalysis(analysis)
	}
	return analysis, nil
}

// fail registra el fallo, avisa a los observers y retorna err sin cambios.
func (a *Analyzer) fail(stage ports.Stage, err error) error {
	if stage == ports.StageValidate {
		a.logger.Debug("text rejected", "reason", err.Error())
	} else {
		a.logger.Err(err, "stage", stage.String(), "kind", errors.Kind(err))
	}

	for _, o := range a.observers {
		o.OnFailure(stage, err)
	}
	return err
}
