// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/interpreter"
)

// DefaultChartWidth ancho en columnas de la barra más larga
const DefaultChartWidth = 40

// PTermOptions configura un PTermPresenter
type PTermOptions struct {
	// Writer destino (default os.Stdout)
	Writer io.Writer

	// Spinner muestra un spinner mientras se clasifica (solo en terminales)
	Spinner bool

	// ChartWidth ancho de la barra más larga (default DefaultChartWidth)
	ChartWidth int
}

// PTermPresenter implementa Presenter usando la biblioteca pterm
// para renderizar la caja de resultado, estrellas y el gráfico de barras.
type PTermPresenter struct {
	mu sync.Mutex

	w          io.Writer
	useSpinner bool
	chartWidth int

	spinner *pterm.SpinnerPrinter
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
func NewPTermPresenter(opts PTermOptions) *PTermPresenter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.ChartWidth <= 0 {
		opts.ChartWidth = DefaultChartWidth
	}
	return &PTermPresenter{
		w:          opts.Writer,
		useSpinner: opts.Spinner,
		chartWidth: opts.ChartWidth,
	}
}

// Start muestra el header de la aplicación
func (p *PTermPresenter) Start(info SessionInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgLightMagenta)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint(AppTitle)
	fmt.Fprintln(p.w, header)

	details := fmt.Sprintf("%s Classifier: %s", IconClassifier, StylePrimary.Sprint(info.Classifier))
	if info.Strict {
		details += StyleSecondary.Sprint("  (strict labels)")
	}
	fmt.Fprintln(p.w, details)

	if info.Mode == ModeInteractive {
		fmt.Fprintln(p.w, StyleSecondary.Sprint(AppSubtitle))
	}
	fmt.Fprintln(p.w, StyleSecondary.Sprint(SeparatorLight))
}

// StartAnalysis arranca el spinner si está habilitado
func (p *PTermPresenter) StartAnalysis(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.useSpinner {
		return
	}
	p.stopSpinner()

	spinner, err := pterm.DefaultSpinner.
		WithWriter(p.w).
		WithRemoveWhenDone(true).
		Start(fmt.Sprintf("Analyzing %q", truncateText(text, 40)))
	if err == nil {
		p.spinner = spinner
	}
}

// ShowAnalysis muestra la caja de resultado y la distribución de confianza
func (p *PTermPresenter) ShowAnalysis(analysis *domain.Analysis) {
	if analysis == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()

	fmt.Fprintln(p.w, renderResultBox(analysis.Verdict))
	fmt.Fprintln(p.w)

	section := pterm.DefaultSection.WithLevel(2).Sprint(ChartTitle)
	fmt.Fprint(p.w, section)

	chart, err := renderScoreChart(analysis.Scores, p.chartWidth)
	if err != nil {
		// El gráfico es informativo: se degrada a una línea por clase
		for _, s := range analysis.Scores {
			fmt.Fprintf(p.w, "  %s %.2f%%\n", TitleLabel(s.Label), s.Percent())
		}
	} else {
		fmt.Fprint(p.w, chart)
	}

	footer := fmt.Sprintf("%s %s  %s %s",
		IconTime, formatDuration(analysis.Duration),
		IconClassifier, analysis.Classifier)
	fmt.Fprintln(p.w, StyleSecondary.Sprint(footer))
	fmt.Fprintln(p.w)
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.printPrefixed(pterm.Info, msg)
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.printPrefixed(pterm.Warning, msg)
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.printPrefixed(pterm.Error, msg)
}

// Close detiene el spinner pendiente
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	return nil
}

func (p *PTermPresenter) printPrefixed(printer pterm.PrefixPrinter, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopSpinner()
	fmt.Fprint(p.w, printer.Sprintln(msg))
}

// stopSpinner asume p.mu tomado
func (p *PTermPresenter) stopSpinner() {
	if p.spinner == nil {
		return
	}
	_ = p.spinner.Stop()
	p.spinner = nil
}

// resultLines retorna las tres líneas del veredicto
func resultLines(v domain.Verdict) []string {
	return []string{
		"Sentiment: " + v.DisplaySentiment(),
		"Confidence: " + v.DisplayConfidence(),
		fmt.Sprintf("Rating: %s (%d/%d)", v.StarDisplay(), v.Stars, domain.MaxStars),
	}
}

// renderResultBox dibuja el veredicto con los colores de su sentimiento
func renderResultBox(v domain.Verdict) string {
	palette := PaletteFor(v.Sentiment)
	style := pterm.NewRGBStyle(palette.ForegroundRGB(), palette.BackgroundRGB())

	lines := resultLines(v)
	for i, line := range lines {
		lines[i] = style.Sprint(" " + line + " ")
	}

	return pterm.DefaultBox.
		WithTitle(ResultTitle).
		WithTitleTopCenter().
		WithBoxStyle(pterm.NewStyle(palette.Border)).
		Sprint(strings.Join(lines, "\n"))
}

// renderScoreChart dibuja una barra horizontal por clase, en el orden del clasificador.
// Las barras se escalan a la mayor; el porcentaje exacto va en la etiqueta.
func renderScoreChart(scores domain.Scores, width int) (string, error) {
	bars := make(pterm.Bars, 0, len(scores))
	for _, s := range scores {
		sentiment, _ := interpreter.NormalizeLabel(s.Label)
		bars = append(bars, pterm.Bar{
			Label: fmt.Sprintf("%s %.2f%%", TitleLabel(s.Label), s.Percent()),
			Value: int(math.Round(s.Probability * 1000)),
			Style: pterm.NewStyle(PaletteFor(sentiment).Border),
		})
	}

	return pterm.DefaultBarChart.
		WithHorizontal().
		WithBars(bars).
		WithWidth(width).
		Srender()
}
